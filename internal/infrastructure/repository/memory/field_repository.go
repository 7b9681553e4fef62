package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/slotpitch/league-api/internal/domain/field"
)

type FieldRepository struct {
	mu   sync.RWMutex
	rows map[string]field.Definition
}

func NewFieldRepository(seed []field.Definition) *FieldRepository {
	rows := make(map[string]field.Definition, len(seed))
	for _, item := range seed {
		rows[fieldKey(item.LeagueID, item.Key.Normalized())] = item
	}

	return &FieldRepository{rows: rows}
}

func fieldKey(leagueID, normalizedKey string) string {
	return leagueID + "|" + normalizedKey
}

func (r *FieldRepository) GetByKey(_ context.Context, leagueID, normalizedKey string) (field.Definition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.rows[fieldKey(leagueID, normalizedKey)]

	return def, ok, nil
}

func (r *FieldRepository) ListByLeague(_ context.Context, leagueID string, activeOnly bool) ([]field.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]field.Definition, 0)
	for _, def := range r.rows {
		if def.LeagueID != leagueID {
			continue
		}
		if activeOnly && !def.Active {
			continue
		}
		matched = append(matched, def)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Key.Normalized() < matched[j].Key.Normalized()
	})

	return matched, nil
}

func (r *FieldRepository) Upsert(_ context.Context, def field.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	key := fieldKey(def.LeagueID, def.Key.Normalized())
	if existing, ok := r.rows[key]; ok && def.ID == "" {
		def.ID = existing.ID
	}
	r.rows[key] = def
	r.mu.Unlock()

	return nil
}
