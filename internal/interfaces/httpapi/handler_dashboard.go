package httpapi

import (
	"net/http"
)

func (h *Handler) GetTeamDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDashboard")
	defer span.End()

	teamID := r.PathValue("teamID")
	dashboard, err := h.dashboardService.TeamDashboard(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "team dashboard failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
