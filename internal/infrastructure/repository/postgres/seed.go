package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo dataset into an empty database. A database
// with any membership rows is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM memberships`); err != nil {
		return fmt.Errorf("count memberships for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMemberships() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO memberships (user_id, league_id, role, created_at, updated_at)
VALUES (:user_id, :league_id, :role, :created_at, :updated_at)
ON CONFLICT (user_id, league_id) DO NOTHING`, map[string]any{
			"user_id":    m.UserID,
			"league_id":  m.LeagueID,
			"role":       m.Role,
			"created_at": m.CreatedAt,
			"updated_at": m.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed membership %s/%s query: %w", m.UserID, m.LeagueID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s/%s: %w", m.UserID, m.LeagueID, err)
		}
	}

	for _, f := range memory.SeedFields() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO field_definitions (public_id, league_id, park_code, field_code, field_key, park_name, field_name, is_active, created_at, updated_at)
VALUES (:public_id, :league_id, :park_code, :field_code, :field_key, :park_name, :field_name, :is_active, :created_at, :updated_at)
ON CONFLICT (league_id, field_key) DO NOTHING`, map[string]any{
			"public_id":  f.ID,
			"league_id":  f.LeagueID,
			"park_code":  f.Key.ParkCode,
			"field_code": f.Key.FieldCode,
			"field_key":  f.Key.Normalized(),
			"park_name":  f.ParkName,
			"field_name": f.FieldName,
			"is_active":  f.Active,
			"created_at": f.CreatedAt,
			"updated_at": f.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed field %s query: %w", f.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed field %s: %w", f.ID, err)
		}
	}

	for _, s := range memory.SeedSlots() {
		model := slotToInsertModel(s)
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO game_slots (public_id, league_id, division, offering_team_id, game_date, start_time, end_time, start_minutes, end_minutes, field_key, park_code, field_code, status, park_name, field_name, offering_email, game_type, notes, created_by, claimed_by_team_id, claimed_by, created_at, updated_at)
VALUES (:public_id, :league_id, :division, :offering_team_id, :game_date, :start_time, :end_time, :start_minutes, :end_minutes, :field_key, :park_code, :field_code, :status, :park_name, :field_name, :offering_email, :game_type, :notes, :created_by, :claimed_by_team_id, :claimed_by, :created_at, :updated_at)
ON CONFLICT (public_id) DO NOTHING`, model)
		if err != nil {
			return fmt.Errorf("bind seed slot %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed slot %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}

	return nil
}
