package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slotpitch/league-api/internal/domain/slot"
	qb "github.com/slotpitch/league-api/internal/platform/querybuilder"
)

type SlotRepository struct {
	db *sqlx.DB
}

func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) GetByID(ctx context.Context, leagueID, slotID string) (slot.Slot, bool, error) {
	query, args, err := qb.Select("*").From("game_slots").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("public_id", slotID),
		).
		ToSQL()
	if err != nil {
		return slot.Slot{}, false, fmt.Errorf("build get slot by id query: %w", err)
	}

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return slot.Slot{}, false, nil
		}
		return slot.Slot{}, false, fmt.Errorf("get slot by id: %w", err)
	}

	return slotFromRow(row), true, nil
}

func (r *SlotRepository) ListByLeague(ctx context.Context, leagueID string, filter slot.ListFilter) ([]slot.Slot, error) {
	conditions := []qb.Condition{qb.Eq("league_id", leagueID)}
	if filter.Division != "" {
		conditions = append(conditions, qb.Expr("LOWER(division) = LOWER(?)", filter.Division))
	}
	if filter.FieldKey != "" {
		conditions = append(conditions, qb.Eq("field_key", filter.FieldKey))
	}
	if filter.GameDate != "" {
		conditions = append(conditions, qb.Eq("game_date", filter.GameDate))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}

	builder := qb.Select("*").From("game_slots").
		Where(conditions...).
		OrderBy("game_date", "start_minutes", "public_id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	out := make([]slot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, slotFromRow(row))
	}

	return out, nil
}

func (r *SlotRepository) ListByFieldDate(ctx context.Context, leagueID, fieldKey, gameDate string) ([]slot.Slot, error) {
	query, args, err := qb.Select("*").From("game_slots").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("field_key", fieldKey),
			qb.Eq("game_date", gameDate),
		).
		OrderBy("start_minutes", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slots by field date query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slots by field date: %w", err)
	}

	out := make([]slot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, slotFromRow(row))
	}

	return out, nil
}

func (r *SlotRepository) Insert(ctx context.Context, s slot.Slot) error {
	query, args, err := qb.InsertModel("game_slots", slotToInsertModel(s), "")
	if err != nil {
		return fmt.Errorf("build insert slot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}

	return nil
}

func (r *SlotRepository) Update(ctx context.Context, s slot.Slot) error {
	query, args, err := qb.Update("game_slots").
		Set("division", s.Division).
		Set("offering_team_id", s.OfferingTeamID).
		Set("game_date", s.GameDate).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("start_minutes", s.StartMinutes).
		Set("end_minutes", s.EndMinutes).
		Set("field_key", s.FieldKey).
		Set("park_code", s.ParkCode).
		Set("field_code", s.FieldCode).
		Set("status", string(s.Status)).
		Set("park_name", s.ParkName).
		Set("field_name", s.FieldName).
		Set("offering_email", s.OfferingEmail).
		Set("game_type", s.GameType).
		Set("notes", s.Notes).
		Set("claimed_by_team_id", s.ClaimedByTeamID).
		Set("claimed_by", s.ClaimedBy).
		Set("updated_at", s.UpdatedAt).
		Where(
			qb.Eq("league_id", s.LeagueID),
			qb.Eq("public_id", s.ID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update slot query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update slot rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("slot %s does not exist", s.ID)
	}

	return nil
}
