package embeddings

import (
	"context"
	"testing"
)

type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }
func (s *stubEmbedder) Name() string    { return "stub" }

func TestToChromemFuncSingleText(t *testing.T) {
	stub := &stubEmbedder{}
	fn := ToChromemFunc(stub)

	vec, err := fn(context.Background(), "boutique chaussures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(vec))
	}
	if stub.calls != 1 {
		t.Errorf("expected 1 embed call, got %d", stub.calls)
	}
}

func TestNewEmbedderUnknownProvider(t *testing.T) {
	if _, err := NewEmbedder("quantum", "m"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewEmbedderOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewEmbedder("openai", "text-embedding-3-small"); err == nil {
		t.Error("expected error when OPENAI_API_KEY is missing")
	}
}

func TestNewEmbedderOllamaDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	e, err := NewEmbedder("ollama", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oe, ok := e.(*OllamaEmbedder)
	if !ok {
		t.Fatal("expected *OllamaEmbedder")
	}
	if oe.model != "nomic-embed-text" {
		t.Errorf("expected default model, got %q", oe.model)
	}
	if oe.baseURL != defaultOllamaBaseURL {
		t.Errorf("expected default host, got %q", oe.baseURL)
	}
}

func TestOpenAIModelDimensions(t *testing.T) {
	if ModelTextEmbedding3Small.dimensions() != 1536 {
		t.Error("small model should be 1536-dimensional")
	}
	if ModelTextEmbedding3Large.dimensions() != 3072 {
		t.Error("large model should be 3072-dimensional")
	}
}
