// Package session holds the state of the activity form an instructor fills in.
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/alignment"
	"github.com/pedagogyradar/radar/core/scaffold"
)

const (
	DefaultStrategy = "flipped"

	// MaxEvidenceLen is the longest evidence label accepted, in characters.
	MaxEvidenceLen = 30

	objectivesSep = ";"
)

var (
	ErrBlankEvidence     = errors.New("la evidencia está vacía")
	ErrDuplicateEvidence = errors.New("la evidencia ya fue agregada")
	ErrEvidenceTooLong   = errors.Errorf("la evidencia supera los %d caracteres", MaxEvidenceLen)
	ErrTooManyEvidences  = errors.Errorf("no se pueden agregar más de %d evidencias", scaffold.MaxEvidences)
	ErrOutOfRange        = errors.New("índice fuera de rango")
	ErrUnknownTaxonomy   = errors.New("nivel de taxonomía desconocido")
)

// DefaultEvidences returns the evidences a new form starts with.
func DefaultEvidences() []string {
	return []string{"Quiz", "Ensayo crítico"}
}

// Form is the state of one activity being designed. It is not safe for concurrent use.
type Form struct {
	Carrera  string
	Semestre string
	Materia  string
	Tema     string

	StrategyID  string
	Title       string
	Description string
	Prework     string
	Activity    string
	Rubric      string

	objectives string
	taxonomies map[string]string // objective text -> level set by the user
	evidences  []string
}

func New() *Form {
	return &Form{
		StrategyID: DefaultStrategy,
		taxonomies: make(map[string]string),
		evidences:  DefaultEvidences(),
	}
}

// SetObjectives replaces the objectives with a ";"-separated text.
func (f *Form) SetObjectives(text string) {
	f.objectives = text
}

// SetObjectiveList replaces the objectives with `objs`, as suggestions are applied.
func (f *Form) SetObjectiveList(objs []string) {
	f.objectives = strings.Join(objs, objectivesSep+" ")
}

func (f *Form) ObjectivesText() string {
	return f.objectives
}

// ObjectiveTexts returns the trimmed, non-empty objectives.
func (f *Form) ObjectiveTexts() []string {
	return core.SplitClean(f.objectives, objectivesSep)
}

// Objectives returns the objectives with their taxonomy level.
func (f *Form) Objectives() []scaffold.LearningObjective {
	texts := f.ObjectiveTexts()
	objs := make([]scaffold.LearningObjective, 0, len(texts))
	for _, text := range texts {
		level, ok := f.taxonomies[text]
		if !ok {
			level = scaffold.DefaultTaxonomy
		}
		objs = append(objs, scaffold.LearningObjective{Text: text, Taxonomy: level})
	}
	return objs
}

// SetTaxonomy tags the i-th objective with `level`.
func (f *Form) SetTaxonomy(i int, level string) error {
	texts := f.ObjectiveTexts()
	if i < 0 || i >= len(texts) {
		return ErrOutOfRange
	}
	for _, l := range scaffold.TaxonomyLevels {
		if strings.EqualFold(l, strings.TrimSpace(level)) {
			if f.taxonomies == nil {
				f.taxonomies = make(map[string]string)
			}
			f.taxonomies[texts[i]] = l
			return nil
		}
	}
	return errors.Wrap(ErrUnknownTaxonomy, level)
}

func (f *Form) Evidences() []string {
	return append(make([]string, 0, len(f.evidences)), f.evidences...)
}

// AddEvidence appends a trimmed evidence label.
func (f *Form) AddEvidence(label string) error {
	label = core.CleanString(label)
	switch {
	case label == "":
		return ErrBlankEvidence
	case utf8.RuneCountInString(label) > MaxEvidenceLen:
		return ErrEvidenceTooLong
	case len(f.evidences) >= scaffold.MaxEvidences:
		return ErrTooManyEvidences
	}
	for _, ev := range f.evidences {
		if ev == label {
			return ErrDuplicateEvidence
		}
	}
	f.evidences = append(f.evidences, label)
	return nil
}

func (f *Form) RemoveEvidence(i int) error {
	if i < 0 || i >= len(f.evidences) {
		return ErrOutOfRange
	}
	f.evidences = append(f.evidences[:i], f.evidences[i+1:]...)
	return nil
}

// Warnings checks the objectives against the in-class activity and the evidences.
func (f *Form) Warnings() []string {
	pool := append([]string{f.Activity}, f.evidences...)
	return alignment.Validate(f.ObjectiveTexts(), pool)
}

// AddPreworkResource appends a suggested resource to the prework instructions.
func (f *Form) AddPreworkResource(r scaffold.PreworkResource) {
	if f.Prework == "" {
		f.Prework = r.Entry()
		return
	}
	f.Prework += "\n" + r.Entry()
}

// Request is the whole form as sent to the generation service.
func (f *Form) Request() scaffold.Request {
	return scaffold.Request{
		Carrera:             f.Carrera,
		Semestre:            f.Semestre,
		Materia:             f.Materia,
		Tema:                f.Tema,
		StrategyID:          f.StrategyID,
		ActivityTitle:       f.Title,
		ActivityDescription: f.Description,
		LearningObjectives:  f.Objectives(),
		PreworkInstructions: f.Prework,
		InClassActivity:     f.Activity,
		Evidences:           f.Evidences(),
		Rubric:              f.Rubric,
	}
}

func (f *Form) CanSuggestObjectives() bool { return f.Title != "" && f.Description != "" }
func (f *Form) CanSuggestActivity() bool {
	return f.Title != "" && f.Description != "" && f.StrategyID != ""
}
func (f *Form) CanSuggestRubric() bool  { return f.Title != "" && f.Description != "" }
func (f *Form) CanSuggestPrework() bool { return f.Title != "" }
