package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/slotpitch/league-api/internal/domain/membership"
)

type MembershipRepository struct {
	mu   sync.RWMutex
	rows map[string]membership.Membership
}

func NewMembershipRepository(seed []membership.Membership) *MembershipRepository {
	rows := make(map[string]membership.Membership, len(seed))
	for _, item := range seed {
		rows[membershipKey(item.UserID, item.LeagueID)] = item
	}

	return &MembershipRepository{rows: rows}
}

func membershipKey(userID, leagueID string) string {
	return userID + "|" + leagueID
}

func (r *MembershipRepository) Get(_ context.Context, userID, leagueID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.rows[membershipKey(userID, leagueID)]

	return m, ok, nil
}

func (r *MembershipRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]membership.Membership, 0)
	for _, m := range r.rows {
		if m.UserID == userID {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].LeagueID < matched[j].LeagueID })

	return pageMemberships(matched, limit, offset), nil
}

func (r *MembershipRepository) ListByLeague(_ context.Context, leagueID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]membership.Membership, 0)
	for _, m := range r.rows {
		if m.LeagueID == leagueID {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UserID < matched[j].UserID })

	return matched, nil
}

func (r *MembershipRepository) Upsert(_ context.Context, m membership.Membership) error {
	userID := strings.TrimSpace(m.UserID)
	leagueID := strings.TrimSpace(m.LeagueID)
	if userID == "" || leagueID == "" {
		return nil
	}
	m.UserID = userID
	m.LeagueID = leagueID

	r.mu.Lock()
	r.rows[membershipKey(userID, leagueID)] = m
	r.mu.Unlock()

	return nil
}

func (r *MembershipRepository) Delete(_ context.Context, userID, leagueID string) error {
	r.mu.Lock()
	delete(r.rows, membershipKey(strings.TrimSpace(userID), strings.TrimSpace(leagueID)))
	r.mu.Unlock()

	return nil
}

func pageMemberships(rows []membership.Membership, limit, offset int) []membership.Membership {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []membership.Membership{}
	}

	rows = rows[offset:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]membership.Membership, len(rows))
	copy(out, rows)

	return out
}
