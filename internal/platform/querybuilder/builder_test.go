package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("fecha", "usuario").
		From("picks").
		WhereEq("usuario", "Frank").
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT fecha, usuario FROM picks WHERE usuario = $1 ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Frank" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_NoTable(t *testing.T) {
	if _, _, err := Select("fecha").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("picks").
		Columns("usuario", "game_id").
		Values("Frank", "0022500123").
		Values("Kike", "0022500124").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO picks (usuario, game_id) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "Kike" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("picks").
		Columns("usuario", "game_id").
		Values("Frank").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for short row")
	}
}
