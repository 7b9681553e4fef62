package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slotpitch/league-api/internal/domain/membership"
	qb "github.com/slotpitch/league-api/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Get(ctx context.Context, userID, leagueID string) (membership.Membership, bool, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_id", leagueID),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]membership.Membership, error) {
	builder := qb.Select("*").From("memberships").
		Where(qb.Eq("user_id", userID)).
		OrderBy("league_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by user query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, leagueID string) ([]membership.Membership, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by league query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by league: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func (r *MembershipRepository) Upsert(ctx context.Context, m membership.Membership) error {
	insertModel := membershipInsertModel{
		UserID:    m.UserID,
		LeagueID:  m.LeagueID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	query, args, err := qb.InsertModel("memberships", insertModel, `ON CONFLICT (user_id, league_id)
DO UPDATE SET
    role = EXCLUDED.role,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}

	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, userID, leagueID string) error {
	query, args, err := qb.DeleteFrom("memberships").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_id", leagueID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	return nil
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		UserID:    row.UserID,
		LeagueID:  row.LeagueID,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
