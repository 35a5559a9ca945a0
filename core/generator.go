package core

import "context"

type (
	GenerateRequest struct {
		Prompt    string
		System    string // optional system instruction
		MaxTokens int

		// Accept reports whether a generated text is usable.
		// A rejected text counts as no answer, nil accepts any non-blank text.
		Accept func(text string) bool
	}

	// Generator is any service that turns a prompt into text.
	Generator interface {
		Generate(ctx context.Context, req GenerateRequest) (string, error)
	}
)
