// Package ai contains clients for the external generation providers.
package ai

import "context"

// TextRequest describes a single text generation call.
type TextRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TextGenerator produces text from a prompt. Implementations must honor
// context cancellation and deadlines.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// ImageClient talks to the external image API. Returned bytes are the raw
// image payload; callers handle storage.
type ImageClient interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
	RemoveBackground(ctx context.Context, image []byte, filename string) ([]byte, error)
	RemoveObject(ctx context.Context, image []byte, filename, object string) ([]byte, error)
}
