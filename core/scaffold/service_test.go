package scaffold

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/strategy"
)

func newTestService(t *testing.T, gen core.Generator) (*Service, *mailerMock) {
	t.Helper()
	catalog, err := strategy.LoadDefault()
	require.NoError(t, err)
	mailer := new(mailerMock)
	return NewService(gen, catalog, mailer, core.NewNopLogger()), mailer
}

func testRequest() Request {
	return Request{
		Carrera:             "Ingeniería Comercial",
		Materia:             "Marketing Digital",
		StrategyID:          "flipped",
		ActivityTitle:       "Marketing de contenidos para pymes",
		ActivityDescription: "Una pyme local necesita una estrategia de contenidos.",
		LearningObjectives:  []LearningObjective{{Text: "Analizar campañas de contenido", Taxonomy: TaxonomyAnalysis}},
		Evidences:           []string{"Quiz"},
	}
}

func TestService_SuggestObjectives(t *testing.T) {
	req := testRequest()
	tests := []struct {
		name string
		gen  *stubGenerator
		want []string
	}{
		{
			name: "numbered list",
			gen:  answering("1. Analizar campañas de marketing de contenidos\n2. Evaluar métricas de alcance\n"),
			want: []string{"Analizar campañas de marketing de contenidos", "Evaluar métricas de alcance"},
		},
		{name: "empty answer", gen: answering(""), want: defaultObjectives},
		{name: "short first item", gen: answering("1. Analizar\n2. Evaluar métricas de alcance y engagement"), want: defaultObjectives},
		{name: "prompt echoed", gen: answering(objectivesPrompt(req, numObjectives)), want: defaultObjectives},
		{
			name: "generator error",
			gen:  &stubGenerator{answer: func(string) (string, error) { return "", errors.New("boom") }},
			want: defaultObjectives,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, tt.gen)
			got, err := svc.SuggestObjectives(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, tt.gen.prompts, 1)
			p := tt.gen.prompts[0]
			assert.Contains(t, p.Prompt, "Carrera: Ingeniería Comercial\nMateria o curso: Marketing Digital\n\nRedacta 4 objetivos")
			assert.Equal(t, objectivesMaxTokens, p.MaxTokens)
			assert.NotNil(t, p.Accept)
		})
	}

	t.Run("fallback is a copy", func(t *testing.T) {
		svc, _ := newTestService(t, answering(""))
		got, err := svc.SuggestObjectives(context.Background(), req)
		require.NoError(t, err)
		got[0] = "changed"
		assert.Equal(t, "Analizar conceptos clave del tema.", defaultObjectives[0])
	})

	t.Run("canceled", func(t *testing.T) {
		svc, _ := newTestService(t, answering(""))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.SuggestObjectives(ctx, req)
		assert.Equal(t, context.Canceled, err)
	})
}

func TestService_SuggestActivity(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{
			name:   "first item",
			answer: "1. Analizar en grupos el caso de una pyme real\n2. Presentar conclusiones",
			want:   "Analizar en grupos el caso de una pyme real",
		},
		{name: "prose", answer: "Los estudiantes diseñan un calendario editorial.", want: "Los estudiantes diseñan un calendario editorial."},
		{name: "too short", answer: "- Debate", want: defaultActivity},
		{name: "instructions echoed", answer: "Redacta una actividad principal para la clase de hoy", want: defaultActivity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, answering(tt.answer))
			got, err := svc.SuggestActivity(context.Background(), testRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SuggestRubric(t *testing.T) {
	gen := answering("\nNivel 1 (Aprueba): mínimo\nNivel 2 (Destacado): bien\nNivel 3 (Excelente): muy bien\n")
	svc, _ := newTestService(t, gen)
	got, err := svc.SuggestRubric(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Nivel 1 (Aprueba): mínimo\nNivel 2 (Destacado): bien\nNivel 3 (Excelente): muy bien", got)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, rubricSystemPrompt, gen.prompts[0].System)
	assert.Contains(t, gen.prompts[0].Prompt, "Los objetivos de aprendizaje son: Analizar campañas de contenido.")

	svc, _ = newTestService(t, answering("Una rúbrica sin niveles"))
	got, err = svc.SuggestRubric(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, defaultRubric, got)
}

func TestService_SuggestPreworkResources(t *testing.T) {
	svc, _ := newTestService(t, answering("- Guía de contenidos [libro] (https://example.org/guia): Capítulos 1 y 2."))
	got, err := svc.SuggestPreworkResources(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, []PreworkResource{
		{Title: "Guía de contenidos", Type: "libro", URL: "https://example.org/guia", Summary: "Capítulos 1 y 2."},
	}, got)

	svc, _ = newTestService(t, answering("1. Un recurso sin formato"))
	got, err = svc.SuggestPreworkResources(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, defaultResources, got)
}

func TestService_SuggestEvidenceAlignment(t *testing.T) {
	svc, _ := newTestService(t, answering(""))

	tests := []struct {
		name          string
		req           AlignmentRequest
		wantSuggested []string
		wantReasoning string
	}{
		{
			name:          "no objectives",
			req:           AlignmentRequest{Evidences: []string{"Quiz"}},
			wantSuggested: []string{},
			wantReasoning: "No hay objetivos que evaluar.",
		},
		{
			name:          "misaligned",
			req:           AlignmentRequest{Objectives: []string{"Analizar el mercado", " "}, Evidences: []string{"Quiz"}},
			wantSuggested: []string{"Informe", "Análisis de caso", "Debate", "Presentación"},
			wantReasoning: "El objetivo 'Analizar el mercado' (analizar) requiere evidencias como: Informe, Análisis de caso, Debate, Presentación.",
		},
		{
			name:          "activity backs the objective",
			req:           AlignmentRequest{Objectives: []string{"Evaluar propuestas"}, Activities: []string{"Debate en clase"}},
			wantSuggested: []string{},
			wantReasoning: "Las actividades y evidencias actuales están alineadas con todos los objetivos.",
		},
		{
			name:          "no known verb",
			req:           AlignmentRequest{Objectives: []string{"Diseñar un logo"}},
			wantSuggested: []string{},
			wantReasoning: "Ningún objetivo usa un verbo reconocible de la taxonomía de Bloom; no es posible verificar la alineación.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.SuggestEvidenceAlignment(tt.req)
			assert.Equal(t, tt.wantSuggested, got.SuggestedEvidences)
			assert.Equal(t, tt.wantReasoning, got.Reasoning)
		})
	}
}

func TestService_Scaffold(t *testing.T) {
	svc, _ := newTestService(t, answering(""))

	req := testRequest()
	req.StrategyID = "lol"
	_, err := svc.Scaffold(context.Background(), req)
	assert.Equal(t, strategy.ErrNotFound, errors.Cause(err))

	md, err := svc.Scaffold(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Contains(t, md, "# Marketing de contenidos para pymes")
	assert.Contains(t, md, "1. Analizar campañas de contenido _(Análisis)_")
	assert.Contains(t, md, `⚠️ El objetivo "Analizar campañas de contenido" sugiere evidencias como: Informe`)

	req = testRequest()
	req.InClassActivity = "Debate sobre campañas reales"
	md, err = svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, md, "⚠️", "the in-class activity counts as evidence")
}

func TestService_Draft(t *testing.T) {
	t.Run("fills the empty parts", func(t *testing.T) {
		gen := answering("")
		svc, _ := newTestService(t, gen)
		req := testRequest()
		req.LearningObjectives = nil

		draft, md, err := svc.Draft(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, gen.prompts, 4)

		require.Len(t, draft.LearningObjectives, len(defaultObjectives))
		assert.Equal(t, LearningObjective{Text: defaultObjectives[0], Taxonomy: DefaultTaxonomy}, draft.LearningObjectives[0])
		assert.Equal(t, defaultActivity, draft.InClassActivity)
		assert.Equal(t, defaultRubric, draft.Rubric)
		entries := make([]string, 0, len(defaultResources))
		for _, r := range defaultResources {
			entries = append(entries, r.Entry())
		}
		assert.Equal(t, strings.Join(entries, "\n"), draft.PreworkInstructions)

		assert.Contains(t, md, "Nivel 2 (Destacado)")
		assert.Contains(t, md, "Evaluar el impacto de la solución propuesta.")
		assert.Nil(t, req.LearningObjectives, "the input is left untouched")
	})

	t.Run("keeps what is set", func(t *testing.T) {
		gen := answering("")
		svc, _ := newTestService(t, gen)
		req := testRequest()
		req.InClassActivity = "Debate guiado"
		req.Rubric = "Nivel 1: lo mínimo"
		req.PreworkInstructions = "Leer el capítulo 3."

		draft, _, err := svc.Draft(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, gen.prompts)
		assert.Equal(t, req, draft)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		gen := answering("")
		svc, _ := newTestService(t, gen)
		req := testRequest()
		req.StrategyID = "lol"
		_, _, err := svc.Draft(context.Background(), req)
		assert.Equal(t, strategy.ErrNotFound, errors.Cause(err))
		assert.Empty(t, gen.prompts)
	})

	t.Run("canceled", func(t *testing.T) {
		svc, _ := newTestService(t, answering(""))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := svc.Draft(ctx, Request{StrategyID: "pbl", ActivityTitle: "x", ActivityDescription: "y"})
		assert.Equal(t, context.Canceled, errors.Cause(err))
	})
}

func TestService_EmailScaffold(t *testing.T) {
	svc, mailer := newTestService(t, answering(""))

	err := svc.EmailScaffold(context.Background(), EmailRequest{Request: testRequest(), To: []string{"not an address"}})
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "to", verr.Fields[0].Field)
	assert.Empty(t, mailer.sent)

	err = svc.EmailScaffold(context.Background(), EmailRequest{Request: testRequest(), To: []string{"Profe <profe@example.org>"}})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "profe@example.org", msg.To[0].Address)
	assert.Equal(t, "Actividad: Marketing de contenidos para pymes", msg.Subject)
	assert.Equal(t, EmailTemplate, msg.TemplateName)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "scaffold.md", msg.Attachments[0].Filename)

	data := msg.TemplateData.(map[string]interface{})
	assert.Contains(t, data["Markdown"], "# Marketing de contenidos para pymes")
	assert.Contains(t, fmt.Sprint(data["HTML"]), "<h1>Marketing de contenidos para pymes</h1>")
}
