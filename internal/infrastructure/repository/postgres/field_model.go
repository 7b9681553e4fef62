package postgres

import (
	"time"

	"github.com/slotpitch/league-api/internal/domain/field"
)

type fieldTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	LeagueID  string    `db:"league_id"`
	ParkCode  string    `db:"park_code"`
	FieldCode string    `db:"field_code"`
	FieldKey  string    `db:"field_key"`
	ParkName  string    `db:"park_name"`
	FieldName string    `db:"field_name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fieldInsertModel struct {
	PublicID  string    `db:"public_id"`
	LeagueID  string    `db:"league_id"`
	ParkCode  string    `db:"park_code"`
	FieldCode string    `db:"field_code"`
	FieldKey  string    `db:"field_key"`
	ParkName  string    `db:"park_name"`
	FieldName string    `db:"field_name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func fieldFromRow(row fieldTableModel) field.Definition {
	return field.Definition{
		ID:       row.PublicID,
		LeagueID: row.LeagueID,
		Key: field.Key{
			ParkCode:  row.ParkCode,
			FieldCode: row.FieldCode,
		},
		ParkName:  row.ParkName,
		FieldName: row.FieldName,
		Active:    row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
