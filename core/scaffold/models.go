package scaffold

import (
	"github.com/go-playground/validator/v10"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/strategy"
)

// Taxonomy levels an objective can be tagged with.
const (
	TaxonomyKnowledge     = "Conocimiento"
	TaxonomyComprehension = "Comprensión"
	TaxonomyApplication   = "Aplicación"
	TaxonomyAnalysis      = "Análisis"
	TaxonomySynthesis     = "Síntesis"
	TaxonomyEvaluation    = "Evaluación"

	DefaultTaxonomy = TaxonomyKnowledge

	// MaxEvidences is how many evidences an activity can declare.
	MaxEvidences = 6
)

var TaxonomyLevels = []string{
	TaxonomyKnowledge, TaxonomyComprehension, TaxonomyApplication,
	TaxonomyAnalysis, TaxonomySynthesis, TaxonomyEvaluation,
}

type LearningObjective struct {
	Text     string `json:"text" validate:"required"`
	Taxonomy string `json:"taxonomy" validate:"omitempty,oneof=Conocimiento Comprensión Aplicación Análisis Síntesis Evaluación"`
}

// Request carries everything known about the activity being designed.
type Request struct {
	Carrera             string              `json:"carrera"`
	Semestre            string              `json:"semestre"`
	Materia             string              `json:"materia"`
	Tema                string              `json:"tema"`
	StrategyID          string              `json:"strategy_id" validate:"required,slug"`
	ActivityTitle       string              `json:"activity_title" validate:"required"`
	ActivityDescription string              `json:"activity_description" validate:"required"`
	LearningObjectives  []LearningObjective `json:"learning_objectives" validate:"dive"`
	PreworkInstructions string              `json:"prework_instructions"`
	InClassActivity     string              `json:"in_class_activity"`
	Evidences           []string            `json:"evidences" validate:"max=6"`
	Rubric              string              `json:"rubric"`
}

// Clean trims every field and drops blank objectives and evidences.
func (r *Request) Clean() {
	r.Carrera = core.CleanString(r.Carrera)
	r.Semestre = core.CleanString(r.Semestre)
	r.Materia = core.CleanString(r.Materia)
	r.Tema = core.CleanString(r.Tema)
	r.StrategyID = core.CleanString(r.StrategyID, true /* lower */)
	r.ActivityTitle = core.CleanString(r.ActivityTitle)
	r.ActivityDescription = core.CleanString(r.ActivityDescription)
	r.PreworkInstructions = core.CleanString(r.PreworkInstructions)
	r.InClassActivity = core.CleanString(r.InClassActivity)
	r.Rubric = core.CleanString(r.Rubric)
	r.Evidences = core.CleanStrings(r.Evidences)

	objs := r.LearningObjectives[:0]
	for _, o := range r.LearningObjectives {
		o.Text = core.CleanString(o.Text)
		o.Taxonomy = core.CleanString(o.Taxonomy)
		if o.Text != "" {
			objs = append(objs, o)
		}
	}
	r.LearningObjectives = objs
}

func (r *Request) Validate(validate *validator.Validate) error {
	r.Clean()
	return validate.Struct(r)
}

// ObjectiveTexts returns the text of every learning objective.
func (r Request) ObjectiveTexts() []string {
	texts := make([]string, 0, len(r.LearningObjectives))
	for _, o := range r.LearningObjectives {
		texts = append(texts, o.Text)
	}
	return texts
}

// EvidencePool is what the alignment check looks into: the in-class activity and the evidences.
func (r Request) EvidencePool() []string {
	pool := make([]string, 0, len(r.Evidences)+1)
	if r.InClassActivity != "" {
		pool = append(pool, r.InClassActivity)
	}
	return append(pool, r.Evidences...)
}

// EmailRequest asks for the scaffold of Request to be mailed to To.
type EmailRequest struct {
	Request
	To []string `json:"to" validate:"required,min=1,dive,email"`
}

func (er *EmailRequest) Validate(validate *validator.Validate) error {
	er.Request.Clean()
	er.To = core.CleanStrings(er.To)
	return validate.Struct(er)
}

type AlignmentRequest struct {
	Objectives []string `json:"objectives"`
	Activities []string `json:"activities"`
	Evidences  []string `json:"evidences"`
}

func (ar *AlignmentRequest) Clean() {
	ar.Objectives = core.CleanStrings(ar.Objectives)
	ar.Activities = core.CleanStrings(ar.Activities)
	ar.Evidences = core.CleanStrings(ar.Evidences)
}

type EvidenceAlignment struct {
	SuggestedEvidences []string `json:"suggested_evidences"`
	Reasoning          string   `json:"reasoning"`
}

type PreworkResource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Type    string `json:"type"` // paper, video, curso, mooc, podcast, libro
	Summary string `json:"summary"`
}

// Entry is how a resource is written into the prework instructions.
func (pr PreworkResource) Entry() string {
	return pr.Title + " [" + pr.Type + "] " + pr.URL + "\n" + pr.Summary
}

// Document is the data a strategy template is rendered with.
type Document struct {
	Request
	Strategy            strategy.Strategy
	ExpectedEvidence    []string
	ImplementationNotes string
	References          []string
	Warnings            []string
}
