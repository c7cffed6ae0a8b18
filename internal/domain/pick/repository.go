package pick

import "context"

// Store is the append-only pick log. Implementations never enforce
// uniqueness; deduplication belongs to the submission engine.
type Store interface {
	ReadAll(ctx context.Context) ([]Record, error)
	Append(ctx context.Context, records []Record) error
}
