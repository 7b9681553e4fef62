package slot

import "context"

// ListFilter narrows slot listings. Zero values match everything.
type ListFilter struct {
	Division string
	FieldKey string
	GameDate string
	Status   Status
	Limit    int
	Offset   int
}

// Repository describes slot persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, leagueID, slotID string) (Slot, bool, error)
	ListByLeague(ctx context.Context, leagueID string, filter ListFilter) ([]Slot, error)
	ListByFieldDate(ctx context.Context, leagueID, fieldKey, gameDate string) ([]Slot, error)
	Insert(ctx context.Context, s Slot) error
	Update(ctx context.Context, s Slot) error
}
