package llm

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the backend is not configured or cannot serve
// the request. Callers are expected to fall back rather than surface it.
var ErrUnavailable = errors.New("backend unavailable")

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient produces fixed-dimension vectors comparable by cosine
// similarity. Text and image embeddings must live in the same vector space
// for zero-shot classification to work (CLIP-style backends).
type EmbedderClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
}
