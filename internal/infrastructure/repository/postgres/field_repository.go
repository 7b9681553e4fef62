package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slotpitch/league-api/internal/domain/field"
	qb "github.com/slotpitch/league-api/internal/platform/querybuilder"
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) GetByKey(ctx context.Context, leagueID, normalizedKey string) (field.Definition, bool, error) {
	query, args, err := qb.Select("*").From("field_definitions").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("field_key", normalizedKey),
		).
		ToSQL()
	if err != nil {
		return field.Definition{}, false, fmt.Errorf("build get field by key query: %w", err)
	}

	var row fieldTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return field.Definition{}, false, nil
		}
		return field.Definition{}, false, fmt.Errorf("get field by key: %w", err)
	}

	return fieldFromRow(row), true, nil
}

func (r *FieldRepository) ListByLeague(ctx context.Context, leagueID string, activeOnly bool) ([]field.Definition, error) {
	conditions := []qb.Condition{qb.Eq("league_id", leagueID)}
	if activeOnly {
		conditions = append(conditions, qb.Eq("is_active", true))
	}

	query, args, err := qb.Select("*").From("field_definitions").
		Where(conditions...).
		OrderBy("field_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fields query: %w", err)
	}

	var rows []fieldTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	out := make([]field.Definition, 0, len(rows))
	for _, row := range rows {
		out = append(out, fieldFromRow(row))
	}

	return out, nil
}

func (r *FieldRepository) Upsert(ctx context.Context, def field.Definition) error {
	insertModel := fieldInsertModel{
		PublicID:  def.ID,
		LeagueID:  def.LeagueID,
		ParkCode:  def.Key.ParkCode,
		FieldCode: def.Key.FieldCode,
		FieldKey:  def.Key.Normalized(),
		ParkName:  def.ParkName,
		FieldName: def.FieldName,
		IsActive:  def.Active,
		CreatedAt: def.CreatedAt,
		UpdatedAt: def.UpdatedAt,
	}
	// The public id and created_at of the first import win; reimports only
	// refresh the display names and active flag.
	query, args, err := qb.InsertModel("field_definitions", insertModel, `ON CONFLICT (league_id, field_key)
DO UPDATE SET
    park_name = EXCLUDED.park_name,
    field_name = EXCLUDED.field_name,
    is_active = EXCLUDED.is_active,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert field query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert field: %w", err)
	}

	return nil
}
