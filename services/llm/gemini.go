package llm

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/pedagogyradar/radar/core"
)

type Gemini struct {
	client *genai.Client
	model  string
	conf   *core.Config
}

func NewGemini(ctx context.Context, conf *core.Config, httpClient *http.Client) (*Gemini, error) {
	return newGemini(ctx, conf, httpClient, "")
}

func newGemini(ctx context.Context, conf *core.Config, httpClient *http.Client, baseURL string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      conf.LLM.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &Gemini{client: client, model: conf.LLM.GeminiModel, conf: conf}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

func (g *Gemini) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: int32(maxTokens(req)),
	}
	if system := systemPrompt(req, g.conf); system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}
	return resp.Text(), nil
}
