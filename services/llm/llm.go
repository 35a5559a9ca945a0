// Package llm turns prompts into text with the configured language-model backends.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core"
)

// ErrNoAnswer is returned when no backend produced an accepted text.
var ErrNoAnswer = errors.New("no backend produced a usable answer")

const (
	defaultMaxTokens = 256
	temperature      = 0.3
)

// Backend is a single text-generation provider.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req core.GenerateRequest) (string, error)
}

// Chain asks its backends in order and returns the first accepted answer.
type Chain struct {
	backends []Backend
	logger   core.Logger
}

var _ core.Generator = (*Chain)(nil)

func NewChain(logger core.Logger, backends ...Backend) *Chain {
	return &Chain{backends: backends, logger: logger}
}

// New builds the chain of every backend with a configured key: Gemini, HuggingFace then OpenAI.
// Without any key the chain only holds the offline backend.
func New(conf *core.Config, logger core.Logger) (*Chain, error) {
	httpClient := &http.Client{Timeout: conf.LLM.Timeout}

	var backends []Backend
	if conf.LLM.GeminiAPIKey != "" {
		gemini, err := NewGemini(context.Background(), conf, httpClient)
		if err != nil {
			return nil, errors.Wrap(err, "setting up gemini")
		}
		backends = append(backends, gemini)
	}
	if conf.LLM.HFAPIToken != "" {
		backends = append(backends, NewHuggingFace(conf, httpClient))
	}
	if conf.LLM.OpenAIAPIKey != "" {
		backends = append(backends, NewOpenAI(conf, httpClient))
	}
	if len(backends) == 0 {
		backends = append(backends, Offline{})
	}
	return NewChain(logger, backends...), nil
}

// Names lists the backends in the order they are asked.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		names = append(names, b.Name())
	}
	return names
}

func (c *Chain) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	accept := req.Accept
	if accept == nil {
		accept = func(text string) bool { return strings.TrimSpace(text) != "" }
	}
	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := b.Generate(ctx, req)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("llm %s: %v", b.Name(), err), err)
			continue
		}
		if !accept(text) {
			c.logger.Debug(fmt.Sprintf("llm %s: answer rejected", b.Name()))
			continue
		}
		return text, nil
	}
	return "", ErrNoAnswer
}

// Offline never answers, so callers fall back to their defaults.
type Offline struct{}

func (Offline) Name() string { return "offline" }

func (Offline) Generate(context.Context, core.GenerateRequest) (string, error) { return "", nil }

func maxTokens(req core.GenerateRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

func systemPrompt(req core.GenerateRequest, conf *core.Config) string {
	if req.System != "" {
		return req.System
	}
	return conf.LLM.SystemPrompt
}
