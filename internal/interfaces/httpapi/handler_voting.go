package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchdayhq/matchday/internal/usecase"
)

type submitVoteRequest struct {
	VoterKey  string       `json:"voter_key" validate:"omitempty,max=120"`
	Candidate playerRefDTO `json:"candidate" validate:"required"`
}

func (h *Handler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVote")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req submitVoteRequest
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

	// An authenticated principal always votes under its own identity.
	voterKey := strings.TrimSpace(req.VoterKey)
	if p, ok := principalFromContext(ctx); ok {
		voterKey = p.UserID
	}

	if err := h.votingService.SubmitVote(ctx, matchID, voterKey, req.Candidate.toDomain()); err != nil {
		h.logger.WarnContext(ctx, "submit vote failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]string{"status": "accepted"})
}

func (h *Handler) GetPodium(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPodium")
	defer span.End()

	matchID := r.PathValue("matchID")
	entries, err := h.votingService.Podium(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, podiumToDTO(entries))
}

func (h *Handler) RunPayout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPayout")
	defer span.End()

	matchID := r.PathValue("matchID")
	res, err := h.votingService.Payout(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "payout failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, payoutResultToDTO(res))
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBalance")
	defer span.End()

	teamID := r.PathValue("teamID")
	ref, err := parsePlayerRef(r.PathValue("origin"), r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	balance, err := h.votingService.Balance(ctx, teamID, ref)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"player":  refToDTO(ref),
		"credits": balance,
	})
}

func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatement")
	defer span.End()

	teamID := r.PathValue("teamID")
	ref, err := parsePlayerRef(r.PathValue("origin"), r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.votingService.Statement(ctx, teamID, ref)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ledgerEntriesToDTO(entries))
}

type sweepResultDTO struct {
	Due     int `json:"due"`
	Paid    int `json:"paid"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type payoutSweepRequest struct {
	TeamID  string `json:"team_id" validate:"required,max=80"`
	Workers int    `json:"workers" validate:"omitempty,gte=1,lte=32"`
}

func (h *Handler) RunPayoutSweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPayoutSweep")
	defer span.End()

	var req payoutSweepRequest
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

	res, err := h.votingService.SweepPayouts(ctx, req.TeamID, req.Workers)
	if err != nil {
		h.logger.ErrorContext(ctx, "payout sweep failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepResultDTO{
		Due:     res.Due,
		Paid:    res.Paid,
		Skipped: res.Skipped,
		Failed:  res.Failed,
	})
}
