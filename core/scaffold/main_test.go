package scaffold

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/pedagogyradar/radar/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubGenerator answers every prompt with the text `answer` returns for it.
type stubGenerator struct {
	answer func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []core.GenerateRequest
}

func (g *stubGenerator) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, req)
	g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.answer(req.Prompt)
}

func answering(text string) *stubGenerator {
	return &stubGenerator{answer: func(string) (string, error) { return text, nil }}
}

// mailerMock keeps the messages it is asked to send.
type mailerMock struct {
	sent []*core.EmailMessage
}

func (m *mailerMock) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}
