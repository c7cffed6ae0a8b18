package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hooppool/hooppool/internal/domain/pick"
	qb "github.com/hooppool/hooppool/internal/platform/querybuilder"
)

// PickRepository is the append-only pick log on Postgres. The table carries
// no uniqueness constraint on (usuario, game_id); duplicates are the
// submission engine's problem, the log just records.
type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ReadAll(ctx context.Context) ([]pick.Record, error) {
	query, args, err := qb.Select("id", pick.ColumnDate, pick.ColumnUser, pick.ColumnMatchup, pick.ColumnChosenTeam, pick.ColumnGameID).
		From("picks").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
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

	builder := qb.InsertInto("picks").
		Columns(pick.ColumnDate, pick.ColumnUser, pick.ColumnMatchup, pick.ColumnChosenTeam, pick.ColumnGameID)
	for _, record := range records {
		builder = builder.Values(record.Date, record.User, record.Matchup, record.ChosenTeam, record.GameID)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert picks: %w", err)
	}

	return nil
}
