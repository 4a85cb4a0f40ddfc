package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchdayhq/matchday/internal/usecase"
)

type createMatchRequest struct {
	TeamID          string    `json:"team_id" validate:"required"`
	Opponent        string    `json:"opponent" validate:"required,max=100"`
	KickoffAt       time.Time `json:"kickoff_at" validate:"required"`
	Home            bool      `json:"home"`
	FormationKey    string    `json:"formation_key" validate:"omitempty,max=20"`
	SchemeMinutes   []int     `json:"scheme_minutes" validate:"omitempty,max=10,dive,gt=0"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gt=0,lte=120"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
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

	m, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TeamID:          req.TeamID,
		Opponent:        req.Opponent,
		KickoffAt:       req.KickoffAt,
		Home:            req.Home,
		FormationKey:    req.FormationKey,
		SchemeMinutes:   req.SchemeMinutes,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID := r.PathValue("teamID")
	matches, err := h.matchService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

type setScoreRequest struct {
	GoalsFor     int `json:"goals_for" validate:"gte=0,lte=99"`
	GoalsAgainst int `json:"goals_against" validate:"gte=0,lte=99"`
}

func (h *Handler) SetMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchScore")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req setScoreRequest
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

	m, err := h.matchService.SetScore(ctx, matchID, req.GoalsFor, req.GoalsAgainst)
	if err != nil {
		h.logger.WarnContext(ctx, "set score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

type finalizeMatchRequest struct {
	ApplyStats bool `json:"apply_stats"`
}

func (h *Handler) FinalizeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeMatch")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req finalizeMatchRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	result, err := h.matchService.Finalize(ctx, matchID, req.ApplyStats)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeResultToDTO(result))
}
