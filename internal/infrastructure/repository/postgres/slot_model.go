package postgres

import (
	"time"

	"github.com/slotpitch/league-api/internal/domain/slot"
)

type slotTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	LeagueID        string    `db:"league_id"`
	Division        string    `db:"division"`
	OfferingTeamID  string    `db:"offering_team_id"`
	GameDate        string    `db:"game_date"`
	StartTime       string    `db:"start_time"`
	EndTime         string    `db:"end_time"`
	StartMinutes    int       `db:"start_minutes"`
	EndMinutes      int       `db:"end_minutes"`
	FieldKey        string    `db:"field_key"`
	ParkCode        string    `db:"park_code"`
	FieldCode       string    `db:"field_code"`
	Status          string    `db:"status"`
	ParkName        string    `db:"park_name"`
	FieldName       string    `db:"field_name"`
	OfferingEmail   string    `db:"offering_email"`
	GameType        string    `db:"game_type"`
	Notes           string    `db:"notes"`
	CreatedBy       string    `db:"created_by"`
	ClaimedByTeamID string    `db:"claimed_by_team_id"`
	ClaimedBy       string    `db:"claimed_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type slotInsertModel struct {
	PublicID        string    `db:"public_id"`
	LeagueID        string    `db:"league_id"`
	Division        string    `db:"division"`
	OfferingTeamID  string    `db:"offering_team_id"`
	GameDate        string    `db:"game_date"`
	StartTime       string    `db:"start_time"`
	EndTime         string    `db:"end_time"`
	StartMinutes    int       `db:"start_minutes"`
	EndMinutes      int       `db:"end_minutes"`
	FieldKey        string    `db:"field_key"`
	ParkCode        string    `db:"park_code"`
	FieldCode       string    `db:"field_code"`
	Status          string    `db:"status"`
	ParkName        string    `db:"park_name"`
	FieldName       string    `db:"field_name"`
	OfferingEmail   string    `db:"offering_email"`
	GameType        string    `db:"game_type"`
	Notes           string    `db:"notes"`
	CreatedBy       string    `db:"created_by"`
	ClaimedByTeamID string    `db:"claimed_by_team_id"`
	ClaimedBy       string    `db:"claimed_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func slotFromRow(row slotTableModel) slot.Slot {
	return slot.Slot{
		ID:              row.PublicID,
		LeagueID:        row.LeagueID,
		Division:        row.Division,
		OfferingTeamID:  row.OfferingTeamID,
		GameDate:        row.GameDate,
		StartTime:       row.StartTime,
		EndTime:         row.EndTime,
		StartMinutes:    row.StartMinutes,
		EndMinutes:      row.EndMinutes,
		FieldKey:        row.FieldKey,
		ParkCode:        row.ParkCode,
		FieldCode:       row.FieldCode,
		Status:          slot.Status(row.Status),
		ParkName:        row.ParkName,
		FieldName:       row.FieldName,
		OfferingEmail:   row.OfferingEmail,
		GameType:        row.GameType,
		Notes:           row.Notes,
		CreatedBy:       row.CreatedBy,
		ClaimedByTeamID: row.ClaimedByTeamID,
		ClaimedBy:       row.ClaimedBy,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func slotToInsertModel(s slot.Slot) slotInsertModel {
	return slotInsertModel{
		PublicID:        s.ID,
		LeagueID:        s.LeagueID,
		Division:        s.Division,
		OfferingTeamID:  s.OfferingTeamID,
		GameDate:        s.GameDate,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		StartMinutes:    s.StartMinutes,
		EndMinutes:      s.EndMinutes,
		FieldKey:        s.FieldKey,
		ParkCode:        s.ParkCode,
		FieldCode:       s.FieldCode,
		Status:          string(s.Status),
		ParkName:        s.ParkName,
		FieldName:       s.FieldName,
		OfferingEmail:   s.OfferingEmail,
		GameType:        s.GameType,
		Notes:           s.Notes,
		CreatedBy:       s.CreatedBy,
		ClaimedByTeamID: s.ClaimedByTeamID,
		ClaimedBy:       s.ClaimedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
