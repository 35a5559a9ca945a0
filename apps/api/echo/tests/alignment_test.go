package tests

import (
	"net/http"
	"testing"
)

func Test_checkAlignment(t *testing.T) {
	runHTTPTests(t, []httpTest{
		{
			name:     "aligned",
			method:   http.MethodPost,
			path:     "/alignment",
			body:     []byte(`{"objectives":["Evaluar el impacto"],"evidences":["Ensayo crítico final"]}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"warnings":[]}`),
		},
		{
			name:     "misaligned",
			method:   http.MethodPost,
			path:     "/alignment",
			body:     []byte(`{"objectives":[" ", "Analizar el mercado"],"evidences":["Quiz"]}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"warnings":["⚠️ El objetivo \"Analizar el mercado\" sugiere evidencias como: Informe, Análisis de caso, Debate, Presentación. Ninguna evidencia ingresada parece alineada."]}`),
		},
		{
			name:     "empty",
			method:   http.MethodPost,
			path:     "/alignment",
			body:     []byte(`{}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"warnings":[]}`),
		},
	})
}
