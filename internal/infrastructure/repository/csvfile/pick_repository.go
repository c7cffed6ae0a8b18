package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/hooppool/hooppool/internal/domain/pick"
)

// PickRepository keeps the pick log in one flat CSV file, the same shape as
// the spreadsheet it replaces: a header row of pick.Columns, one row per
// pick. Reads go through pick.ParseRows so a hand-edited header with odd
// casing or padding still loads, and a structurally broken file fails loudly
// instead of being skipped over.
type PickRepository struct {
	mu   sync.Mutex
	path string
}

func NewPickRepository(path string) (*PickRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("pick log path is required")
	}

	r := &PickRepository{path: path}
	if err := r.ensureFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PickRepository) ensureFile() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat pick log: %w", err)
	}

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create pick log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(pick.Columns()); err != nil {
		return fmt.Errorf("write pick log header: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func (r *PickRepository) ReadAll(_ context.Context) ([]pick.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open pick log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pick log: %w", err)
	}

	records, err := pick.ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse pick log: %w", err)
	}
	return records, nil
}

func (r *PickRepository) Append(_ context.Context, records []pick.Record) error {
	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open pick log for append: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, record := range records {
		row := []string{record.Date, record.User, record.Matchup, record.ChosenTeam, record.GameID}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("append pick row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush pick log: %w", err)
	}
	return nil
}
