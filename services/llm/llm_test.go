package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogyradar/radar/core"
)

type fakeBackend struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Generate(context.Context, core.GenerateRequest) (string, error) {
	f.calls++
	return f.text, f.err
}

func testConfig() *core.Config {
	conf := &core.Config{}
	conf.LLM.Timeout = 5 * time.Second
	conf.LLM.SystemPrompt = "Eres un asistente pedagógico."
	conf.LLM.GeminiModel = "gemini-test"
	conf.LLM.HFModel = "org/model"
	conf.LLM.OpenAIModel = "gpt-test"
	return conf
}

func TestChain_Generate(t *testing.T) {
	longEnough := func(text string) bool { return len(text) > 5 }

	tests := []struct {
		name      string
		backends  []*fakeBackend
		accept    func(string) bool
		want      string
		wantErr   error
		wantCalls []int
	}{
		{
			name:      "first answer",
			backends:  []*fakeBackend{{name: "a", text: "hola"}, {name: "b", text: "chao"}},
			want:      "hola",
			wantCalls: []int{1, 0},
		},
		{
			name:      "error skipped",
			backends:  []*fakeBackend{{name: "a", err: errors.New("down")}, {name: "b", text: "chao"}},
			want:      "chao",
			wantCalls: []int{1, 1},
		},
		{
			name:      "blank skipped by default",
			backends:  []*fakeBackend{{name: "a", text: "  \n"}, {name: "b", text: "chao"}},
			want:      "chao",
			wantCalls: []int{1, 1},
		},
		{
			name:      "rejected answer skipped",
			backends:  []*fakeBackend{{name: "a", text: "hola"}, {name: "b", text: "buenos días"}},
			accept:    longEnough,
			want:      "buenos días",
			wantCalls: []int{1, 1},
		},
		{
			name:      "nothing accepted",
			backends:  []*fakeBackend{{name: "a", text: ""}, {name: "b", err: errors.New("down")}},
			wantErr:   ErrNoAnswer,
			wantCalls: []int{1, 1},
		},
		{name: "no backends", wantErr: ErrNoAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends := make([]Backend, 0, len(tt.backends))
			for _, b := range tt.backends {
				backends = append(backends, b)
			}
			chain := NewChain(core.NewNopLogger(), backends...)

			got, err := chain.Generate(context.Background(), core.GenerateRequest{Prompt: "x", Accept: tt.accept})
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
			for i, b := range tt.backends {
				assert.Equal(t, tt.wantCalls[i], b.calls, b.name)
			}
		})
	}

	t.Run("canceled", func(t *testing.T) {
		b := &fakeBackend{name: "a", text: "hola"}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewChain(core.NewNopLogger(), b).Generate(ctx, core.GenerateRequest{Prompt: "x"})
		assert.Equal(t, context.Canceled, err)
		assert.Zero(t, b.calls)
	})
}

func TestNew(t *testing.T) {
	conf := testConfig()
	chain, err := New(conf, core.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"offline"}, chain.Names())

	_, err = chain.Generate(context.Background(), core.GenerateRequest{Prompt: "x"})
	assert.Equal(t, ErrNoAnswer, err)

	conf.LLM.HFAPIToken = "hf"
	conf.LLM.OpenAIAPIKey = "sk"
	chain, err = New(conf, core.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"huggingface:org/model", "openai:gpt-test"}, chain.Names())
}

func TestHuggingFace_Generate(t *testing.T) {
	var got hfRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/org/model", r.URL.Path)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if strings.Contains(got.Inputs, "falla") {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":"Model is currently loading"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"generated_text":"1. Analizar el mercado"}]`)
	}))
	defer srv.Close()

	conf := testConfig()
	conf.LLM.HFAPIToken = "hf-token"
	hf := NewHuggingFace(conf, srv.Client())
	hf.baseURL = srv.URL

	text, err := hf.Generate(context.Background(), core.GenerateRequest{Prompt: "Redacta objetivos", MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "1. Analizar el mercado", text)

	want := hfRequest{
		Inputs:     "<s>[INST] Eres un asistente pedagógico.\n\nRedacta objetivos [/INST]",
		Parameters: hfParameters{MaxNewTokens: 100, Temperature: 0.3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}

	_, err = hf.Generate(context.Background(), core.GenerateRequest{Prompt: "falla"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503: Model is currently loading")
	assert.Equal(t, defaultMaxTokens, got.Parameters.MaxNewTokens)
}

func TestOpenAI_Generate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if got.Messages[len(got.Messages)-1].Content == "falla" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"message":"Incorrect API key provided"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Nivel 1 (Aprueba): ..."}}]}`)
	}))
	defer srv.Close()

	conf := testConfig()
	conf.LLM.OpenAIAPIKey = "sk-test"
	o := NewOpenAI(conf, srv.Client())
	o.baseURL = srv.URL

	text, err := o.Generate(context.Background(), core.GenerateRequest{Prompt: "Genera una rúbrica", System: "Eres un experto.", MaxTokens: 350})
	require.NoError(t, err)
	assert.Equal(t, "Nivel 1 (Aprueba): ...", text)

	want := chatRequest{
		Model: "gpt-test",
		Messages: []chatMessage{
			{Role: "system", Content: "Eres un experto."},
			{Role: "user", Content: "Genera una rúbrica"},
		},
		MaxTokens:   350,
		Temperature: 0.3,
		N:           1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}

	_, err = o.Generate(context.Background(), core.GenerateRequest{Prompt: "falla"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401: Incorrect API key provided")
}

func TestGemini_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Sugiere recursos")
		assert.Contains(t, string(body), "Eres un asistente pedagógico.")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"- Guía [libro] (https://example.org): útil"}]}}]}`)
	}))
	defer srv.Close()

	conf := testConfig()
	conf.LLM.GeminiAPIKey = "g-key"
	g, err := newGemini(context.Background(), conf, srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "gemini:gemini-test", g.Name())

	text, err := g.Generate(context.Background(), core.GenerateRequest{Prompt: "Sugiere recursos"})
	require.NoError(t, err)
	assert.Equal(t, "- Guía [libro] (https://example.org): útil", text)
}
