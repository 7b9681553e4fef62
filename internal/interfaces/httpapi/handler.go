package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/slotpitch/league-api/internal/domain/user"
	"github.com/slotpitch/league-api/internal/platform/logging"
	"github.com/slotpitch/league-api/internal/usecase"
)

type Handler struct {
	slotService       *usecase.SlotService
	importService     *usecase.ImportService
	fieldService      *usecase.FieldService
	membershipService *usecase.MembershipService
	guards            *usecase.GuardService
	readiness         func(ctx context.Context) error
	logger            *logging.Logger
	validator         *validator.Validate
}

// NewHandler wires the request surface. readiness is consulted by /readyz and
// may be nil when the process has no external dependency to probe.
func NewHandler(
	slotService *usecase.SlotService,
	importService *usecase.ImportService,
	fieldService *usecase.FieldService,
	membershipService *usecase.MembershipService,
	guards *usecase.GuardService,
	readiness func(ctx context.Context) error,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		slotService:       slotService,
		importService:     importService,
		fieldService:      fieldService,
		membershipService: membershipService,
		guards:            guards,
		readiness:         readiness,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeBody(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// requestScope pulls the league scope and caller identity set by the
// LeagueScope and RequireAuth middleware. A route registered without those
// middleware surfaces the gap here rather than acting unscoped.
func requestScope(ctx context.Context) (string, user.Principal, error) {
	leagueID, ok := leagueScopeFromContext(ctx)
	if !ok {
		return "", user.Principal{}, fmt.Errorf("%w: league scope is missing from request context", usecase.ErrInvalidScope)
	}

	principal, ok := principalFromContext(ctx)
	if !ok {
		return "", user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}

	return leagueID, principal, nil
}
