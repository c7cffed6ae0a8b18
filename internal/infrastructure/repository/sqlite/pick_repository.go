package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hooppool/hooppool/internal/domain/pick"
)

const createPicksTable = `
CREATE TABLE IF NOT EXISTS picks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fecha TEXT NOT NULL,
	usuario TEXT NOT NULL,
	matchup TEXT NOT NULL,
	ganador_elegido TEXT NOT NULL,
	game_id TEXT NOT NULL
)`

const selectPicks = `
SELECT id, fecha, usuario, matchup, ganador_elegido, game_id
FROM picks
ORDER BY id`

const insertPick = `
INSERT INTO picks (fecha, usuario, matchup, ganador_elegido, game_id)
VALUES (?, ?, ?, ?, ?)`

// PickRepository is the pick log on a local SQLite file, for single-machine
// deployments that skip Postgres.
type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) (*PickRepository, error) {
	if _, err := db.Exec(createPicksTable); err != nil {
		return nil, fmt.Errorf("create picks table: %w", err)
	}
	return &PickRepository{db: db}, nil
}

type pickRow struct {
	ID         int64  `db:"id"`
	Date       string `db:"fecha"`
	User       string `db:"usuario"`
	Matchup    string `db:"matchup"`
	ChosenTeam string `db:"ganador_elegido"`
	GameID     string `db:"game_id"`
}

func (r *PickRepository) ReadAll(ctx context.Context) ([]pick.Record, error) {
	var rows []pickRow
	if err := r.db.SelectContext(ctx, &rows, selectPicks); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Record{
			Date:       row.Date,
			User:       row.User,
			Matchup:    row.Matchup,
			ChosenTeam: row.ChosenTeam,
			GameID:     row.GameID,
		})
	}
	return out, nil
}

func (r *PickRepository) Append(ctx context.Context, records []pick.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append picks: %w", err)
	}
	for _, record := range records {
		if _, err := tx.ExecContext(ctx, insertPick,
			record.Date, record.User, record.Matchup, record.ChosenTeam, record.GameID,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert pick: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append picks: %w", err)
	}
	return nil
}
