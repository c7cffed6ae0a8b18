package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Minimal SQL builder for the pick log: plain selects with equality
// filters and multi-row inserts. Placeholders are numbered ($1, $2, ...)
// for the postgres driver.

type SelectBuilder struct {
	columns   []string
	table     string
	whereCols []string
	whereArgs []any
	orderBy   []string
	limit     int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// WhereEq adds one `column = $n` predicate; predicates are ANDed.
func (b *SelectBuilder) WhereEq(column string, value any) *SelectBuilder {
	b.whereCols = append(b.whereCols, column)
	b.whereArgs = append(b.whereArgs, value)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select needs at least one column")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs a table")
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	args := make([]any, 0, len(b.whereArgs))
	for i, column := range b.whereCols {
		if i == 0 {
			sql.WriteString(" WHERE ")
		} else {
			sql.WriteString(" AND ")
		}
		sql.WriteString(column)
		sql.WriteString(" = $")
		sql.WriteString(strconv.Itoa(i + 1))
		args = append(args, b.whereArgs[i])
	}

	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(b.limit))
	}

	return sql.String(), args, nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	returning string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

// Values queues one row; call it once per record for a batch insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = strings.Join(columns, ", ")
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert needs a table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert needs columns")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert needs at least one row")
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(b.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	n := 1
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString("(")
		for j, value := range row {
			if j > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString("$")
			sql.WriteString(strconv.Itoa(n))
			args = append(args, value)
			n++
		}
		sql.WriteString(")")
	}

	if b.returning != "" {
		sql.WriteString(" RETURNING ")
		sql.WriteString(b.returning)
	}

	return sql.String(), args, nil
}
