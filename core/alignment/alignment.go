// Package alignment checks that learning objectives are backed by matching evidences.
//
// Each objective is mapped to a Bloom verb, and each verb to the evidence types that
// usually demonstrate it. An objective is misaligned when none of the declared evidences
// mentions one of those types.
package alignment

import (
	"fmt"
	"strings"
)

// Rule maps a Bloom verb to the evidence types that demonstrate it.
type Rule struct {
	Verb     string
	Evidence []string
}

// rules is ordered: verb detection returns the first rule that matches.
var rules = []Rule{
	{Verb: "recordar", Evidence: []string{"Quiz", "Preguntas de opción múltiple", "Lista de conceptos"}},
	{Verb: "comprender", Evidence: []string{"Resumen", "Explicación oral", "Mapa conceptual"}},
	{Verb: "aplicar", Evidence: []string{"Ejercicio práctico", "Simulación", "Resolución de problemas"}},
	{Verb: "analizar", Evidence: []string{"Informe", "Análisis de caso", "Debate", "Presentación"}},
	{Verb: "evaluar", Evidence: []string{"Ensayo crítico", "Debate", "Peer review", "Rúbrica"}},
	{Verb: "crear", Evidence: []string{"Proyecto", "Diseño", "Prototipo", "Presentación final"}},
}

// Rules returns a copy of the verb table, in lookup order.
func Rules() []Rule {
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		cp[i] = Rule{Verb: r.Verb, Evidence: append([]string(nil), r.Evidence...)}
	}
	return cp
}

// Warning describes an objective none of the evidences backs.
type Warning struct {
	Objective string
	Verb      string
	Suggested []string
}

func (w Warning) String() string {
	return fmt.Sprintf(
		"⚠️ El objetivo \"%s\" sugiere evidencias como: %s. Ninguna evidencia ingresada parece alineada.",
		w.Objective, strings.Join(w.Suggested, ", "),
	)
}

// DetectVerb returns the first verb of the table found in the objective, ignoring case.
// It returns "" when the objective holds no known verb.
func DetectVerb(objective string) string {
	if r, ok := detect(objective); ok {
		return r.Verb
	}
	return ""
}

// SuggestedEvidence returns the evidence types expected for `verb`, nil for an unknown verb.
func SuggestedEvidence(verb string) []string {
	for _, r := range rules {
		if r.Verb == verb {
			return append([]string(nil), r.Evidence...)
		}
	}
	return nil
}

func detect(objective string) (Rule, bool) {
	lower := strings.ToLower(objective)
	for _, r := range rules {
		// a prefix match is also a containment match
		if strings.Contains(lower, r.Verb) {
			return r, true
		}
	}
	return Rule{}, false
}

// Check returns one Warning per misaligned objective, in input order.
// Objectives without a known verb cannot be checked and never produce a warning.
func Check(objectives, evidences []string) []Warning {
	lowered := make([]string, len(evidences))
	for i, ev := range evidences {
		lowered[i] = strings.ToLower(ev)
	}

	var warnings []Warning
	for _, obj := range objectives {
		r, ok := detect(obj)
		if !ok || aligned(r.Evidence, lowered) {
			continue
		}
		warnings = append(warnings, Warning{
			Objective: obj,
			Verb:      r.Verb,
			Suggested: append([]string(nil), r.Evidence...),
		})
	}
	return warnings
}

// Validate is Check rendered as messages.
func Validate(objectives, evidences []string) []string {
	warnings := Check(objectives, evidences)
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.String())
	}
	return msgs
}

// Suggest returns the evidence types that would align every misaligned objective,
// without duplicates and in first-seen order.
func Suggest(objectives, evidences []string) []string {
	seen := make(map[string]bool)
	var suggested []string
	for _, w := range Check(objectives, evidences) {
		for _, s := range w.Suggested {
			if !seen[s] {
				seen[s] = true
				suggested = append(suggested, s)
			}
		}
	}
	return suggested
}

// aligned reports whether one of the (lowercased) evidences mentions one of the suggested types.
func aligned(suggested, evidences []string) bool {
	for _, ev := range evidences {
		for _, s := range suggested {
			if strings.Contains(ev, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}
