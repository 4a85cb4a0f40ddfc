package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/matchdayhq/matchday/internal/domain/attendance"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	players, err := h.lineupService.ListAvailable(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	matchID := r.PathValue("matchID")
	sheet, tpl, err := h.lineupService.Sheet(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet, tpl))
}

type assignSlotRequest struct {
	Player playerRefDTO `json:"player" validate:"required"`
}

func (h *Handler) AssignLineupSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignLineupSlot")
	defer span.End()

	matchID := r.PathValue("matchID")
	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid slot", usecase.ErrInvalidInput))
		return
	}

	var req assignSlotRequest
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

	if _, err := h.lineupService.Assign(ctx, matchID, slot, req.Player.toDomain()); err != nil {
		h.logger.WarnContext(ctx, "assign slot failed", "match_id", matchID, "slot", slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	sheet, tpl, err := h.lineupService.Sheet(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet, tpl))
}

func (h *Handler) UnassignLineupSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignLineupSlot")
	defer span.End()

	matchID := r.PathValue("matchID")
	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid slot", usecase.ErrInvalidInput))
		return
	}

	if _, err := h.lineupService.Unassign(ctx, matchID, slot); err != nil {
		h.logger.WarnContext(ctx, "unassign slot failed", "match_id", matchID, "slot", slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	sheet, tpl, err := h.lineupService.Sheet(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet, tpl))
}

func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAbsences")
	defer span.End()

	matchID := r.PathValue("matchID")
	absences, err := h.lineupService.ListAbsences(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]absenceDTO, 0, len(absences))
	for _, a := range absences {
		items = append(items, absenceDTO{MemberID: a.MemberID, Note: a.Note})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type setAbsencesRequest struct {
	Absences []absenceRecord `json:"absences" validate:"dive"`
}

type absenceRecord struct {
	MemberID int64  `json:"member_id" validate:"required,gt=0"`
	Note     string `json:"note" validate:"max=200"`
}

func (h *Handler) SetAbsences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAbsences")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req setAbsencesRequest
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

	absences := make([]attendance.Absence, 0, len(req.Absences))
	for _, a := range req.Absences {
		absences = append(absences, attendance.Absence{MatchID: matchID, MemberID: a.MemberID, Note: a.Note})
	}

	if err := h.lineupService.SetAbsences(ctx, matchID, absences); err != nil {
		h.logger.WarnContext(ctx, "set absences failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"absences": len(absences)})
}
