package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/platform/logging"
)

// FieldService serves the field catalog reads. Catalog writes only happen via
// the CSV importer.
type FieldService struct {
	fields field.Repository
	logger *logging.Logger
}

func NewFieldService(fields field.Repository, logger *logging.Logger) *FieldService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FieldService{fields: fields, logger: logger}
}

// ListFields returns the league's field catalog, optionally filtered down to
// active entries.
func (s *FieldService) ListFields(ctx context.Context, leagueID string, activeOnly bool) ([]field.Definition, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	defs, err := s.fields.ListByLeague(ctx, leagueID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	return defs, nil
}

// GetField looks a catalog entry up by its normalized key, accepting either
// separator on input.
func (s *FieldService) GetField(ctx context.Context, leagueID, rawKey string) (field.Definition, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return field.Definition{}, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	key, ok := field.ParseKeyFlexible(strings.TrimSpace(rawKey))
	if !ok {
		return field.Definition{}, fmt.Errorf("%w: invalid field key %q (use park/field or park_field)", ErrInvalidInput, rawKey)
	}

	def, found, err := s.fields.GetByKey(ctx, leagueID, key.Normalized())
	if err != nil {
		return field.Definition{}, fmt.Errorf("get field: %w", err)
	}
	if !found {
		return field.Definition{}, fmt.Errorf("%w: field %s", ErrNotFound, key.Normalized())
	}

	return def, nil
}
