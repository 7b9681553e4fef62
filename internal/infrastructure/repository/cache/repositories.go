// Package cache wraps repositories with a read-through store. Writes go
// straight to the next layer and invalidate the affected keys.
package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/domain/slot"
	basecache "github.com/slotpitch/league-api/internal/platform/cache"
)

type MembershipRepository struct {
	next  membership.Repository
	cache *basecache.Store
}

func NewMembershipRepository(next membership.Repository, cache *basecache.Store) *MembershipRepository {
	return &MembershipRepository{next: next, cache: cache}
}

func (r *MembershipRepository) Get(ctx context.Context, userID, leagueID string) (membership.Membership, bool, error) {
	key := membershipKey(userID, leagueID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, userID, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedMembership{value: item, exists: exists}, nil
	})
	if err != nil {
		return membership.Membership{}, false, err
	}

	cached, _ := v.(cachedMembership)
	return cached.value, cached.exists, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]membership.Membership, error) {
	key := membershipListByUserPrefix(userID) + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByUser(ctx, userID, limit, offset)
		if err != nil {
			return nil, err
		}
		return append([]membership.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]membership.Membership)
	return append([]membership.Membership(nil), items...), nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, leagueID string) ([]membership.Membership, error) {
	key := "membership:list:league:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]membership.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]membership.Membership)
	return append([]membership.Membership(nil), items...), nil
}

func (r *MembershipRepository) Upsert(ctx context.Context, m membership.Membership) error {
	if err := r.next.Upsert(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, m.UserID, m.LeagueID)
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, userID, leagueID string) error {
	if err := r.next.Delete(ctx, userID, leagueID); err != nil {
		return err
	}
	r.invalidate(ctx, userID, leagueID)
	return nil
}

func (r *MembershipRepository) invalidate(ctx context.Context, userID, leagueID string) {
	r.cache.Delete(ctx, membershipKey(userID, leagueID))
	r.cache.Delete(ctx, "membership:list:league:"+leagueID)
	r.cache.DeletePrefix(ctx, membershipListByUserPrefix(userID))
}

type cachedMembership struct {
	value  membership.Membership
	exists bool
}

func membershipKey(userID, leagueID string) string {
	return "membership:id:" + leagueID + ":" + userID
}

func membershipListByUserPrefix(userID string) string {
	return "membership:list:user:" + userID + ":"
}

type FieldRepository struct {
	next  field.Repository
	cache *basecache.Store
}

func NewFieldRepository(next field.Repository, cache *basecache.Store) *FieldRepository {
	return &FieldRepository{next: next, cache: cache}
}

func (r *FieldRepository) GetByKey(ctx context.Context, leagueID, normalizedKey string) (field.Definition, bool, error) {
	key := fieldByKeyKey(leagueID, normalizedKey)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByKey(ctx, leagueID, normalizedKey)
		if err != nil {
			return nil, err
		}
		return cachedField{value: item, exists: exists}, nil
	})
	if err != nil {
		return field.Definition{}, false, err
	}

	cached, _ := v.(cachedField)
	return cached.value, cached.exists, nil
}

func (r *FieldRepository) ListByLeague(ctx context.Context, leagueID string, activeOnly bool) ([]field.Definition, error) {
	key := fieldListPrefix(leagueID) + strconv.FormatBool(activeOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID, activeOnly)
		if err != nil {
			return nil, err
		}
		return append([]field.Definition(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]field.Definition)
	return append([]field.Definition(nil), items...), nil
}

func (r *FieldRepository) Upsert(ctx context.Context, def field.Definition) error {
	if err := r.next.Upsert(ctx, def); err != nil {
		return err
	}

	r.cache.Delete(ctx, fieldByKeyKey(def.LeagueID, def.Key.Normalized()))
	r.cache.DeletePrefix(ctx, fieldListPrefix(def.LeagueID))
	return nil
}

type cachedField struct {
	value  field.Definition
	exists bool
}

func fieldByKeyKey(leagueID, normalizedKey string) string {
	return "field:key:" + leagueID + ":" + normalizedKey
}

func fieldListPrefix(leagueID string) string {
	return "field:list:" + leagueID + ":"
}

type SlotRepository struct {
	next  slot.Repository
	cache *basecache.Store
}

func NewSlotRepository(next slot.Repository, cache *basecache.Store) *SlotRepository {
	return &SlotRepository{next: next, cache: cache}
}

func (r *SlotRepository) GetByID(ctx context.Context, leagueID, slotID string) (slot.Slot, bool, error) {
	key := slotByIDKey(leagueID, slotID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID, slotID)
		if err != nil {
			return nil, err
		}
		return cachedSlot{value: item, exists: exists}, nil
	})
	if err != nil {
		return slot.Slot{}, false, err
	}

	cached, _ := v.(cachedSlot)
	return cached.value, cached.exists, nil
}

func (r *SlotRepository) ListByLeague(ctx context.Context, leagueID string, filter slot.ListFilter) ([]slot.Slot, error) {
	key := slotListPrefix(leagueID) + slotFilterKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID, filter)
		if err != nil {
			return nil, err
		}
		return append([]slot.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]slot.Slot)
	return append([]slot.Slot(nil), items...), nil
}

func (r *SlotRepository) ListByFieldDate(ctx context.Context, leagueID, fieldKey, gameDate string) ([]slot.Slot, error) {
	key := slotFieldDateKey(leagueID, fieldKey, gameDate)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByFieldDate(ctx, leagueID, fieldKey, gameDate)
		if err != nil {
			return nil, err
		}
		return append([]slot.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]slot.Slot)
	return append([]slot.Slot(nil), items...), nil
}

func (r *SlotRepository) Insert(ctx context.Context, s slot.Slot) error {
	if err := r.next.Insert(ctx, s); err != nil {
		return err
	}
	r.invalidate(ctx, s)
	return nil
}

func (r *SlotRepository) Update(ctx context.Context, s slot.Slot) error {
	if err := r.next.Update(ctx, s); err != nil {
		return err
	}
	r.invalidate(ctx, s)
	return nil
}

func (r *SlotRepository) invalidate(ctx context.Context, s slot.Slot) {
	r.cache.Delete(ctx, slotByIDKey(s.LeagueID, s.ID))
	r.cache.Delete(ctx, slotFieldDateKey(s.LeagueID, s.FieldKey, s.GameDate))
	r.cache.DeletePrefix(ctx, slotListPrefix(s.LeagueID))
}

type cachedSlot struct {
	value  slot.Slot
	exists bool
}

func slotByIDKey(leagueID, slotID string) string {
	return "slot:id:" + leagueID + ":" + slotID
}

func slotFieldDateKey(leagueID, fieldKey, gameDate string) string {
	return "slot:field-date:" + leagueID + ":" + fieldKey + ":" + gameDate
}

func slotListPrefix(leagueID string) string {
	return "slot:list:" + leagueID + ":"
}

func slotFilterKey(filter slot.ListFilter) string {
	parts := []string{
		strings.ToLower(filter.Division),
		filter.FieldKey,
		filter.GameDate,
		string(filter.Status),
		strconv.Itoa(filter.Limit),
		strconv.Itoa(filter.Offset),
	}
	return strings.Join(parts, "|")
}
