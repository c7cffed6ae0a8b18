package pick

import (
	"fmt"
	"strings"
	"time"
)

// Column names of the persisted pick log. Readers must match them
// case-insensitively and ignore surrounding whitespace.
const (
	ColumnDate       = "fecha"
	ColumnUser       = "usuario"
	ColumnMatchup    = "matchup"
	ColumnChosenTeam = "ganador_elegido"
	ColumnGameID     = "game_id"
)

// Columns lists the pick log header in storage order.
func Columns() []string {
	return []string{ColumnDate, ColumnUser, ColumnMatchup, ColumnChosenTeam, ColumnGameID}
}

const DateLayout = "2006-01-02"

// Record is one appended pick. Records are immutable once stored; the pick
// log never sees updates or deletes.
type Record struct {
	Date       string
	User       string
	Matchup    string
	ChosenTeam string
	GameID     string
}

func (r Record) Validate() error {
	if r.User == "" {
		return fmt.Errorf("pick user is required")
	}
	if r.GameID == "" {
		return fmt.Errorf("pick game id is required")
	}
	if r.ChosenTeam == "" {
		return fmt.Errorf("pick chosen team is required")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("pick date %q is not YYYY-MM-DD: %w", r.Date, err)
	}

	return nil
}

// ParseRows maps a raw header+rows table onto Records. The header row is
// matched against Columns() after trimming and lowercasing each cell; any
// missing column, short row, or invalid record fails the whole read. An
// input with only a header yields an empty log.
func ParseRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("pick log has no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range Columns() {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("pick log header is missing column %q", required)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		cell := func(column string) (string, error) {
			pos := index[column]
			if pos >= len(row) {
				return "", fmt.Errorf("pick log row %d has no %q cell", n+1, column)
			}
			return strings.TrimSpace(row[pos]), nil
		}

		record := Record{}
		var err error
		if record.Date, err = cell(ColumnDate); err != nil {
			return nil, err
		}
		if record.User, err = cell(ColumnUser); err != nil {
			return nil, err
		}
		if record.Matchup, err = cell(ColumnMatchup); err != nil {
			return nil, err
		}
		if record.ChosenTeam, err = cell(ColumnChosenTeam); err != nil {
			return nil, err
		}
		if record.GameID, err = cell(ColumnGameID); err != nil {
			return nil, err
		}

		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("pick log row %d: %w", n+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Dates returns the distinct pick dates in first-seen order.
func Dates(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		dates = append(dates, r.Date)
	}
	return dates
}
