package embeddings

import (
	"fmt"
	"os"
)

// NewEmbedder creates an embedder for the given provider and model.
// Supported providers: "openai", "ollama". Semantic retrieval over the
// knowledge base degrades gracefully when no embedder is configured, so
// callers may treat an error here as non-fatal.
func NewEmbedder(providerType string, model string) (Embedder, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIEmbedder(apiKey, OpenAIModel(model)), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if model == "" {
			model = "nomic-embed-text"
		}
		return NewOllamaEmbedder(model, 768, host), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
