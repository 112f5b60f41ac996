package openai

import (
	"context"
	"fmt"

	"clinic-concierge-be/pkg/embedding"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var _ embedding.EmbeddingProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings returned no data")
	}
	return resp.Data[0].Embedding, nil
}

// Probe validates the provider's credential with the cheapest reliable
// call: embedding a single short token.
func (p *OpenAIProvider) Probe(ctx context.Context) error {
	_, err := p.Embed(ctx, "ok")
	return err
}
