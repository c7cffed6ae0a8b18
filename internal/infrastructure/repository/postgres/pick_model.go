package postgres

type pickTableModel struct {
	ID         int64  `db:"id"`
	Date       string `db:"fecha"`
	User       string `db:"usuario"`
	Matchup    string `db:"matchup"`
	ChosenTeam string `db:"ganador_elegido"`
	GameID     string `db:"game_id"`
}
