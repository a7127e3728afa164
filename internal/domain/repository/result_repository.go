package repository

import (
	"context"
	"time"
)

// ResultRepository stores serialized analysis results for later download.
// Implementations are short-TTL caches: results are expendable and the
// pipeline never depends on them.
type ResultRepository interface {
	// SaveResult stores the serialized result under the analysis id.
	SaveResult(ctx context.Context, id string, data []byte, ttl time.Duration) error

	// GetResult returns the stored result, or (nil, nil) when the id is
	// unknown or expired.
	GetResult(ctx context.Context, id string) ([]byte, error)
}
