package memory

import (
	"context"
	"sync"

	"github.com/hooppool/hooppool/internal/domain/pick"
)

// PickRepository is the in-memory pick log used by dev mode and tests.
type PickRepository struct {
	mu      sync.RWMutex
	records []pick.Record
}

func NewPickRepository(seed []pick.Record) *PickRepository {
	return &PickRepository{records: append([]pick.Record(nil), seed...)}
}

func (r *PickRepository) ReadAll(_ context.Context) ([]pick.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Record, 0, len(r.records))
	out = append(out, r.records...)
	return out, nil
}

func (r *PickRepository) Append(_ context.Context, records []pick.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, records...)
	return nil
}
