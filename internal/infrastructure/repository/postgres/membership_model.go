package postgres

import "time"

type membershipTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	LeagueID  string    `db:"league_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type membershipInsertModel struct {
	UserID    string    `db:"user_id"`
	LeagueID  string    `db:"league_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
