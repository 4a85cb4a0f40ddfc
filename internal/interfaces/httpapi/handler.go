package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matchdayhq/matchday/internal/domain/formation"
	"github.com/matchdayhq/matchday/internal/platform/logging"
	"github.com/matchdayhq/matchday/internal/usecase"
)

type Handler struct {
	rosterService       *usecase.RosterService
	matchService        *usecase.MatchService
	lineupService       *usecase.LineupService
	substitutionService *usecase.SubstitutionService
	votingService       *usecase.VotingService
	dashboardService    *usecase.DashboardService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	matchService *usecase.MatchService,
	lineupService *usecase.LineupService,
	substitutionService *usecase.SubstitutionService,
	votingService *usecase.VotingService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:       rosterService,
		matchService:        matchService,
		lineupService:       lineupService,
		substitutionService: substitutionService,
		votingService:       votingService,
		dashboardService:    dashboardService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	keys := formation.Keys()
	items := make([]formationDTO, 0, len(keys))
	for _, key := range keys {
		tpl, err := formation.ByKey(key)
		if err != nil {
			continue
		}
		items = append(items, formationToDTO(tpl))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
