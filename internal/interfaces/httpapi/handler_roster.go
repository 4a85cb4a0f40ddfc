package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	teamID := r.PathValue("teamID")
	members, err := h.rosterService.ListMembers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type setInjuredRequest struct {
	Injured *bool `json:"injured" validate:"required"`
}

func (h *Handler) SetMemberInjured(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMemberInjured")
	defer span.End()

	teamID := r.PathValue("teamID")
	memberID, err := strconv.ParseInt(r.PathValue("memberID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid member id", usecase.ErrInvalidInput))
		return
	}

	var req setInjuredRequest
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

	member, err := h.rosterService.SetInjured(ctx, teamID, memberID, *req.Injured)
	if err != nil {
		h.logger.WarnContext(ctx, "set injured failed", "team_id", teamID, "member_id", memberID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(member))
}

func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGuests")
	defer span.End()

	matchID := r.PathValue("matchID")
	guests, err := h.rosterService.ListGuests(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list guests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]guestDTO, 0, len(guests))
	for _, g := range guests {
		items = append(items, guestToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type addGuestRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Position string `json:"position" validate:"required,oneof=GK DEF MID FWD"`
	Injured  bool   `json:"injured"`
}

func (h *Handler) AddGuest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGuest")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req addGuestRequest
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

	g, err := h.rosterService.AddGuest(ctx, usecase.AddGuestInput{
		MatchID:  matchID,
		Name:     req.Name,
		Position: player.Position(req.Position),
		Injured:  req.Injured,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add guest failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, guestToDTO(g))
}

func (h *Handler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveGuest")
	defer span.End()

	matchID := r.PathValue("matchID")
	guestID, err := strconv.ParseInt(r.PathValue("guestID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid guest id", usecase.ErrInvalidInput))
		return
	}

	if err := h.rosterService.RemoveGuest(ctx, matchID, guestID); err != nil {
		h.logger.WarnContext(ctx, "remove guest failed", "match_id", matchID, "guest_id", guestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListMatchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	players, err := h.rosterService.ResolvePlayers(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}
