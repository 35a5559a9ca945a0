package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectVerb(t *testing.T) {
	tests := []struct {
		name      string
		objective string
		want      string
	}{
		{name: "empty", objective: "", want: ""},
		{name: "no verb", objective: "Diseñar una campaña", want: ""},
		{name: "prefix", objective: "Analizar el mercado", want: "analizar"},
		{name: "contained", objective: "Los estudiantes deben evaluar el impacto", want: "evaluar"},
		{name: "upper case", objective: "RECORDAR fechas clave", want: "recordar"},
		{name: "table order wins", objective: "Evaluar y luego recordar", want: "recordar"},
		{name: "substring of a longer word", objective: "Recrear la escena", want: "crear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectVerb(tt.objective))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		objectives []string
		evidences  []string
		want       []string
	}{
		{name: "nil inputs", want: []string{}},
		{name: "no evidences, no verb", objectives: []string{"Conocer la historia"}, want: []string{}},
		{
			name:       "no known verb",
			objectives: []string{"Diseñar un logo", "Sintetizar lecturas"},
			evidences:  []string{"Quiz"},
			want:       []string{},
		},
		{
			name:       "analizar with quiz",
			objectives: []string{"Analizar el mercado"},
			evidences:  []string{"Quiz"},
			want: []string{
				"⚠️ El objetivo \"Analizar el mercado\" sugiere evidencias como: Informe, Análisis de caso, Debate, Presentación. " +
					"Ninguna evidencia ingresada parece alineada.",
			},
		},
		{
			name:       "evaluar with ensayo crítico substring",
			objectives: []string{"Evaluar el impacto"},
			evidences:  []string{"Ensayo crítico final"},
			want:       []string{},
		},
		{
			name:       "case insensitive evidence",
			objectives: []string{"aplicar fórmulas"},
			evidences:  []string{"SIMULACIÓN de laboratorio"},
			want:       []string{},
		},
		{
			name:       "no evidences",
			objectives: []string{"Crear un prototipo"},
			want: []string{
				"⚠️ El objetivo \"Crear un prototipo\" sugiere evidencias como: Proyecto, Diseño, Prototipo, Presentación final. " +
					"Ninguna evidencia ingresada parece alineada.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.objectives, tt.evidences))
		})
	}
}

func TestValidate_orderAndIdempotence(t *testing.T) {
	objectives := []string{
		"Crear una maqueta",
		"Definir conceptos",
		"Recordar las capitales",
		"Comprender la fotosíntesis",
	}
	evidences := []string{"Informe escrito"}

	first := Check(objectives, evidences)
	require.Len(t, first, 3)
	assert.Equal(t, "Crear una maqueta", first[0].Objective)
	assert.Equal(t, "Recordar las capitales", first[1].Objective)
	assert.Equal(t, "Comprender la fotosíntesis", first[2].Objective)

	assert.Equal(t, Validate(objectives, evidences), Validate(objectives, evidences))
}

func TestSuggest(t *testing.T) {
	got := Suggest(
		[]string{"Analizar datos", "Evaluar propuestas", "Recordar fórmulas"},
		[]string{"Quiz semanal"},
	)
	assert.Equal(t, []string{"Informe", "Análisis de caso", "Debate", "Presentación", "Ensayo crítico", "Peer review", "Rúbrica"}, got)
	assert.Empty(t, Suggest([]string{"Recordar fórmulas"}, []string{"quiz"}))
}

func TestRules_isACopy(t *testing.T) {
	rs := Rules()
	rs[0].Evidence[0] = "changed"
	assert.Equal(t, "Quiz", SuggestedEvidence("recordar")[0])
	assert.Nil(t, SuggestedEvidence("diseñar"))
}
