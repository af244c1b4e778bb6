package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingsClient is a client for the OpenAI embeddings API.
type EmbeddingsClient struct {
	api          *openai.Client
	model        string
	expectedSize int
}

// NewEmbeddingsClient creates a new embeddings client.
// expectedSize is the vector size the store was created with; every returned
// vector is validated against it.
func NewEmbeddingsClient(apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		api:          openai.NewClient(apiKey),
		model:        model,
		expectedSize: expectedSize,
	}
}

// EmbedTexts generates embeddings for the given texts, one vector per input.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: c.expectedSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	result := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		if len(data.Embedding) != c.expectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.expectedSize)
		}
		result[i] = data.Embedding
	}

	return result, nil
}
