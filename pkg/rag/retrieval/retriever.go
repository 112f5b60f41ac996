package retrieval

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/embedding"
	"clinic-concierge-be/pkg/rag"
	"clinic-concierge-be/pkg/store"
)

const chunkSeparator = "\n\n---\n\n"

// Retriever answers questions against the document store by embedding
// the expanded question and running a cosine similarity search.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	repo     contract.DocumentChunkRepository
	topK     int
	logger   logger.ILogger
}

func NewRetriever(embedder embedding.EmbeddingProvider, repo contract.DocumentChunkRepository, topK int, logger logger.ILogger) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		embedder: embedder,
		repo:     repo,
		topK:     topK,
		logger:   logger,
	}
}

// Run never returns an error: embedding or search failures degrade to an
// empty, not-ok result so the caller can continue with other context.
func (r *Retriever) Run(ctx context.Context, question string) rag.DocsResult {
	expanded := rag.ExpandQuery(question)

	vector, err := r.embedder.Embed(ctx, expanded)
	if err != nil {
		r.logger.Warn("retrieval", "embedding failed", map[string]interface{}{"error": err.Error()})
		return rag.DocsResult{}
	}

	scored, err := r.repo.SearchSimilarWithScore(ctx, vector, r.topK)
	if err != nil {
		r.logger.Warn("retrieval", "similarity search failed", map[string]interface{}{"error": err.Error()})
		return rag.DocsResult{}
	}

	docs := make([]store.Document, 0, len(scored))
	parts := make([]string, 0, len(scored))
	for _, sc := range scored {
		content := strings.TrimSpace(sc.Chunk.Content)
		if content == "" {
			continue
		}
		docs = append(docs, store.Document{
			ID:       sc.Chunk.Id.String(),
			Content:  content,
			Score:    float32(sc.Similarity),
			Metadata: decodeMetadata(sc.Chunk.Metadata),
		})
		parts = append(parts, content)
	}

	text := strings.Join(parts, chunkSeparator)
	return rag.DocsResult{
		OK:   text != "",
		Text: text,
		Docs: docs,
	}
}

func decodeMetadata(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
