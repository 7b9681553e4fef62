package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/platform/logging"
)

// identityUnknown is the sentinel the identity layer emits when a request
// carries no authenticated caller. It must never pass an authorization check,
// even when a membership row with that literal id exists.
const identityUnknown = "UNKNOWN"

const defaultAdminScanPageSize = 100

// ResolveLeagueScope reconciles the league id supplied via the x-league-id
// header and the leagueId query parameter. When both are present they must
// agree case-insensitively and the header value wins; exactly one present is
// used as-is; neither present is an invalid scope.
func ResolveLeagueScope(headerValue, queryValue string) (string, error) {
	header := strings.TrimSpace(headerValue)
	query := strings.TrimSpace(queryValue)

	switch {
	case header == "" && query == "":
		return "", fmt.Errorf("%w: league id is required via x-league-id header or leagueId query param", ErrInvalidScope)
	case header != "" && query != "" && !strings.EqualFold(header, query):
		return "", fmt.Errorf("%w: league id mismatch between header %q and query param %q", ErrInvalidScope, header, query)
	case header != "":
		return header, nil
	default:
		return query, nil
	}
}

// GuardService answers the membership and role questions every league-scoped
// request passes through. It only ever reads the membership store.
type GuardService struct {
	memberships      membership.Repository
	requireAdminRole bool
	scanPageSize     int
	logger           *logging.Logger
}

// NewGuardService threads the admin-role requirement in at construction so
// guard behavior is fixed for the process lifetime and tests can pick either
// mode without touching the environment.
func NewGuardService(memberships membership.Repository, requireAdminRole bool, scanPageSize int, logger *logging.Logger) *GuardService {
	if logger == nil {
		logger = logging.Default()
	}
	if scanPageSize <= 0 {
		scanPageSize = defaultAdminScanPageSize
	}

	return &GuardService{
		memberships:      memberships,
		requireAdminRole: requireAdminRole,
		scanPageSize:     scanPageSize,
		logger:           logger,
	}
}

// IsMember reports whether userID belongs to leagueID. Blank and sentinel
// identities are never members and skip the store entirely; a not-found row
// answers "no" rather than failing.
func (s *GuardService) IsMember(ctx context.Context, userID, leagueID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)

	if isUnknownIdentity(userID) || leagueID == "" {
		return false, nil
	}

	_, found, err := s.memberships.Get(ctx, userID, leagueID)
	if err != nil {
		return false, fmt.Errorf("get membership: %w", err)
	}

	return found, nil
}

// RequireMember fails with a forbidden error when the caller has no
// membership in the league.
func (s *GuardService) RequireMember(ctx context.Context, userID, leagueID string) error {
	member, err := s.IsMember(ctx, userID, leagueID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: user %q is not a member of league %q", ErrForbidden, strings.TrimSpace(userID), strings.TrimSpace(leagueID))
	}

	return nil
}

// Role returns the trimmed role of an existing membership, or "" when the
// identity is blank, the sentinel, or simply not a member.
func (s *GuardService) Role(ctx context.Context, userID, leagueID string) (string, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)

	if isUnknownIdentity(userID) || leagueID == "" {
		return "", nil
	}

	m, found, err := s.memberships.Get(ctx, userID, leagueID)
	if err != nil {
		return "", fmt.Errorf("get membership: %w", err)
	}
	if !found {
		return "", nil
	}

	return strings.TrimSpace(m.Role), nil
}

// RequireAdmin gates league administration. With the role requirement off,
// any membership row qualifies the caller; with it on, only a row whose role
// is Admin does, and a caller who has memberships but none with that role is
// rejected with the distinct admin-required error. The scan pages through the
// caller's memberships with a bounded page size and stops at the first
// qualifying row.
func (s *GuardService) RequireAdmin(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if isUnknownIdentity(userID) {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	sawMembership := false
	for offset := 0; ; offset += s.scanPageSize {
		page, err := s.memberships.ListByUser(ctx, userID, s.scanPageSize, offset)
		if err != nil {
			return fmt.Errorf("list memberships for user %q: %w", userID, err)
		}
		if len(page) > 0 {
			sawMembership = true
			if !s.requireAdminRole {
				return nil
			}
		}
		for _, m := range page {
			if m.IsAdmin() {
				return nil
			}
		}
		if len(page) < s.scanPageSize {
			break
		}
	}

	if sawMembership {
		return fmt.Errorf("%w: user %q holds no Admin membership", ErrAdminRequired, userID)
	}

	return fmt.Errorf("%w: user %q has no league membership", ErrForbidden, userID)
}

func isUnknownIdentity(userID string) bool {
	return userID == "" || strings.EqualFold(userID, identityUnknown)
}
