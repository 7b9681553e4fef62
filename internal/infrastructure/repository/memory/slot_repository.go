package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/slotpitch/league-api/internal/domain/slot"
)

type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string]slot.Slot
}

func NewSlotRepository(seed []slot.Slot) *SlotRepository {
	slots := make(map[string]slot.Slot, len(seed))
	for _, item := range seed {
		slots[item.ID] = item
	}

	return &SlotRepository{slots: slots}
}

func (r *SlotRepository) GetByID(_ context.Context, leagueID, slotID string) (slot.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slots[slotID]
	if !ok || s.LeagueID != leagueID {
		return slot.Slot{}, false, nil
	}

	return s, true, nil
}

func (r *SlotRepository) ListByLeague(_ context.Context, leagueID string, filter slot.ListFilter) ([]slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]slot.Slot, 0)
	for _, s := range r.slots {
		if s.LeagueID != leagueID || !matchesFilter(s, filter) {
			continue
		}
		matched = append(matched, s)
	}
	sortSlots(matched)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []slot.Slot{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	out := make([]slot.Slot, len(matched))
	copy(out, matched)

	return out, nil
}

func (r *SlotRepository) ListByFieldDate(_ context.Context, leagueID, fieldKey, gameDate string) ([]slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]slot.Slot, 0)
	for _, s := range r.slots {
		if s.LeagueID != leagueID || s.FieldKey != fieldKey || s.GameDate != gameDate {
			continue
		}
		matched = append(matched, s)
	}
	sortSlots(matched)

	return matched, nil
}

func (r *SlotRepository) Insert(_ context.Context, s slot.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slots[s.ID]; exists {
		return fmt.Errorf("slot %s already exists", s.ID)
	}
	r.slots[s.ID] = s

	return nil
}

func (r *SlotRepository) Update(_ context.Context, s slot.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slots[s.ID]; !exists {
		return fmt.Errorf("slot %s does not exist", s.ID)
	}
	r.slots[s.ID] = s

	return nil
}

func matchesFilter(s slot.Slot, f slot.ListFilter) bool {
	if f.Division != "" && !strings.EqualFold(s.Division, f.Division) {
		return false
	}
	if f.FieldKey != "" && s.FieldKey != f.FieldKey {
		return false
	}
	if f.GameDate != "" && s.GameDate != f.GameDate {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}

	return true
}

func sortSlots(slots []slot.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].GameDate != slots[j].GameDate {
			return slots[i].GameDate < slots[j].GameDate
		}
		if slots[i].StartMinutes != slots[j].StartMinutes {
			return slots[i].StartMinutes < slots[j].StartMinutes
		}
		return slots[i].ID < slots[j].ID
	})
}
