package similarity

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaEmbedder produces embeddings through a local Ollama server.
type OllamaEmbedder struct {
	llm   *ollama.LLM
	model string
}

// NewOllamaEmbedder creates an Ollama embedder. An empty model falls
// back to nomic-embed-text; an empty baseURL uses the default local
// server.
func NewOllamaEmbedder(model, baseURL string) (*OllamaEmbedder, error) {
	if model == "" {
		model = "nomic-embed-text"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("initialize Ollama embedder: %w", err)
	}

	return &OllamaEmbedder{llm: llm, model: model}, nil
}

// Embed returns one embedding vector per input text.
func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := e.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("Ollama embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("Ollama embeddings: got %d vectors for %d inputs", len(vectors), len(texts))
	}
	return vectors, nil
}
