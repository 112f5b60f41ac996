package contract

import (
	"context"

	"clinic-concierge-be/internal/model"
)

// ScoredChunk wraps a DocumentChunk with its similarity score
type ScoredChunk struct {
	Chunk      *model.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	// SearchSimilarWithScore returns the top-k chunks by cosine similarity.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)

	// ReplaceBySourceId deletes any chunks for sourceId and inserts the
	// given ones. Delete-before-insert is the ingestion upsert contract.
	ReplaceBySourceId(ctx context.Context, sourceId string, chunks []*model.DocumentChunk) error
}
