package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) ListSubstitutions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSubstitutions")
	defer span.End()

	matchID := r.PathValue("matchID")
	events, err := h.substitutionService.ListEvents(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]substitutionEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetNextRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextRound")
	defer span.End()

	matchID := r.PathValue("matchID")
	round, err := h.substitutionService.NextRound(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"next_round": round})
}

func (h *Handler) OpenSubstitutionRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenSubstitutionRound")
	defer span.End()

	matchID := r.PathValue("matchID")
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid round", usecase.ErrInvalidInput))
		return
	}

	draft, err := h.substitutionService.OpenRound(ctx, matchID, round)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(draft))
}

// eligibilityRequest carries the uncommitted picks of the round being
// edited, so the response excludes players already used in the draft.
type eligibilityRequest struct {
	Draft []playerRefDTO `json:"draft" validate:"dive"`
}

func (h *Handler) decodeEligibilityDraft(w http.ResponseWriter, r *http.Request) ([]player.Ref, bool) {
	var req eligibilityRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(r.Context(), w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return nil, false
		}
	}

	refs := make([]player.Ref, 0, len(req.Draft))
	for _, d := range req.Draft {
		refs = append(refs, d.toDomain())
	}
	return refs, true
}

func (h *Handler) ListEligibleOutgoing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEligibleOutgoing")
	defer span.End()

	matchID := r.PathValue("matchID")
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid round", usecase.ErrInvalidInput))
		return
	}

	draft, ok := h.decodeEligibilityDraft(w, r)
	if !ok {
		return
	}

	players, err := h.substitutionService.EligibleOutgoing(ctx, matchID, round, draft)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) ListEligibleIncoming(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEligibleIncoming")
	defer span.End()

	matchID := r.PathValue("matchID")
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid round", usecase.ErrInvalidInput))
		return
	}

	draft, ok := h.decodeEligibilityDraft(w, r)
	if !ok {
		return
	}

	players, err := h.substitutionService.EligibleIncoming(ctx, matchID, round, draft)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

type commitRoundRequest struct {
	Minute int                `json:"minute" validate:"omitempty,gt=0"`
	Pairs  []substitutionPair `json:"pairs" validate:"required,min=1,dive"`
}

func (h *Handler) CommitSubstitutionRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitSubstitutionRound")
	defer span.End()

	matchID := r.PathValue("matchID")
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid round", usecase.ErrInvalidInput))
		return
	}

	var req commitRoundRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.substitutionService.CommitRound(ctx, matchID, round, req.Minute, pairsToDomain(req.Pairs)); err != nil {
		h.logger.WarnContext(ctx, "commit round failed", "match_id", matchID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"round": round})
}

type extraSubstitutionRequest struct {
	Minute int              `json:"minute" validate:"required,gt=0"`
	Pair   substitutionPair `json:"pair" validate:"required"`
}

func (h *Handler) AddExtraSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddExtraSubstitution")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req extraSubstitutionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pair := pairsToDomain([]substitutionPair{req.Pair})[0]
	if err := h.substitutionService.AddExtra(ctx, matchID, req.Minute, pair); err != nil {
		h.logger.WarnContext(ctx, "add extra substitution failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]int{"minute": req.Minute})
}
