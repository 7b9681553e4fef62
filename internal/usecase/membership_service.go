package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/platform/logging"
)

// UpsertMembershipInput carries an admin roster write. Role is free-form text;
// only "Admin" (case-insensitive) has special meaning to the guards.
type UpsertMembershipInput struct {
	UserID   string
	LeagueID string
	Role     string
}

// MembershipService owns the roster endpoints. Reads are open to any league
// member; writes go through the guard's admin gate before they reach here, so
// the service only validates shape.
type MembershipService struct {
	memberships membership.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewMembershipService(memberships membership.Repository, logger *logging.Logger) *MembershipService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MembershipService{
		memberships: memberships,
		logger:      logger,
		now:         time.Now,
	}
}

// MyMemberships lists every membership the caller holds, paging through the
// store until a short page.
func (s *MembershipService) MyMemberships(ctx context.Context, userID string) ([]membership.Membership, error) {
	userID = strings.TrimSpace(userID)
	if isUnknownIdentity(userID) {
		return nil, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	const pageSize = defaultAdminScanPageSize
	var out []membership.Membership
	for offset := 0; ; offset += pageSize {
		page, err := s.memberships.ListByUser(ctx, userID, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list memberships for user %q: %w", userID, err)
		}
		out = append(out, page...)
		if len(page) < pageSize {
			break
		}
	}

	return out, nil
}

// ListRoster lists every membership in the league.
func (s *MembershipService) ListRoster(ctx context.Context, leagueID string) ([]membership.Membership, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	roster, err := s.memberships.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list roster for league %q: %w", leagueID, err)
	}

	return roster, nil
}

// UpsertMembership creates or updates a roster row. The created timestamp of
// an existing row is preserved; only the role and updated timestamp move.
func (s *MembershipService) UpsertMembership(ctx context.Context, input UpsertMembershipInput) (membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.UpsertMembership")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	leagueID := strings.TrimSpace(input.LeagueID)
	role := strings.TrimSpace(input.Role)

	if userID == "" {
		return membership.Membership{}, fmt.Errorf("%w: required fields missing: userId", ErrInvalidInput)
	}
	if leagueID == "" {
		return membership.Membership{}, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}
	if strings.EqualFold(userID, identityUnknown) {
		return membership.Membership{}, fmt.Errorf("%w: %q is a reserved identity", ErrInvalidInput, userID)
	}

	now := s.now()
	record := membership.Membership{
		UserID:    userID,
		LeagueID:  leagueID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, found, err := s.memberships.Get(ctx, userID, leagueID)
	if err != nil {
		return membership.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	if found {
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.memberships.Upsert(ctx, record); err != nil {
		return membership.Membership{}, fmt.Errorf("upsert membership: %w", err)
	}

	return record, nil
}

// RemoveMembership deletes a roster row. Removing a row that does not exist is
// a not-found error so admins notice typos.
func (s *MembershipService) RemoveMembership(ctx context.Context, leagueID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.RemoveMembership")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	_, found, err := s.memberships.Get(ctx, userID, leagueID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: user %q has no membership in league %q", ErrNotFound, userID, leagueID)
	}

	if err := s.memberships.Delete(ctx, userID, leagueID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	return nil
}
