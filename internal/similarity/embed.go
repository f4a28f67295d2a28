package similarity

import (
	"context"
	"fmt"
)

// Embedder turns text segments into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NewEmbedder builds an embedder for the named provider.
func NewEmbedder(provider, model, baseURL, apiKey string) (Embedder, error) {
	switch provider {
	case "openai":
		return NewOpenAIEmbedder(apiKey, model, baseURL)
	case "ollama":
		return NewOllamaEmbedder(model, baseURL)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want openai or ollama)", provider)
	}
}
