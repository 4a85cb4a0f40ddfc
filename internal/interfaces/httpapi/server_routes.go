package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedLineupRoutes(mux, handler, verifier)
	registerAuthorizedSubstitutionRoutes(mux, handler, verifier)
	registerAuthorizedVotingRoutes(mux, handler, verifier)
	registerAuthorizedDashboardRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/payout-sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPayoutSweep)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.ListRoster)))
	mux.Handle("PUT /v1/teams/{teamID}/roster/{memberID}/injured", RequireAuth(verifier, http.HandlerFunc(handler.SetMemberInjured)))
	mux.Handle("GET /v1/matches/{matchID}/guests", RequireAuth(verifier, http.HandlerFunc(handler.ListGuests)))
	mux.Handle("POST /v1/matches/{matchID}/guests", RequireAuth(verifier, http.HandlerFunc(handler.AddGuest)))
	mux.Handle("DELETE /v1/matches/{matchID}/guests/{guestID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveGuest)))
	mux.Handle("GET /v1/matches/{matchID}/players", RequireAuth(verifier, http.HandlerFunc(handler.ListMatchPlayers)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("GET /v1/teams/{teamID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamMatches)))
	mux.Handle("PUT /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.SetMatchScore)))
	mux.Handle("POST /v1/matches/{matchID}/finalize", RequireAuth(verifier, http.HandlerFunc(handler.FinalizeMatch)))
}

func registerAuthorizedLineupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/available-players", RequireAuth(verifier, http.HandlerFunc(handler.ListAvailablePlayers)))
	mux.Handle("GET /v1/matches/{matchID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.GetLineup)))
	mux.Handle("PUT /v1/matches/{matchID}/lineup/{slot}", RequireAuth(verifier, http.HandlerFunc(handler.AssignLineupSlot)))
	mux.Handle("DELETE /v1/matches/{matchID}/lineup/{slot}", RequireAuth(verifier, http.HandlerFunc(handler.UnassignLineupSlot)))
	mux.Handle("GET /v1/matches/{matchID}/absences", RequireAuth(verifier, http.HandlerFunc(handler.ListAbsences)))
	mux.Handle("PUT /v1/matches/{matchID}/absences", RequireAuth(verifier, http.HandlerFunc(handler.SetAbsences)))
}

func registerAuthorizedSubstitutionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/substitutions", RequireAuth(verifier, http.HandlerFunc(handler.ListSubstitutions)))
	mux.Handle("GET /v1/matches/{matchID}/substitutions/next-round", RequireAuth(verifier, http.HandlerFunc(handler.GetNextRound)))
	mux.Handle("GET /v1/matches/{matchID}/substitutions/rounds/{round}", RequireAuth(verifier, http.HandlerFunc(handler.OpenSubstitutionRound)))
	mux.Handle("POST /v1/matches/{matchID}/substitutions/rounds/{round}/eligible-outgoing", RequireAuth(verifier, http.HandlerFunc(handler.ListEligibleOutgoing)))
	mux.Handle("POST /v1/matches/{matchID}/substitutions/rounds/{round}/eligible-incoming", RequireAuth(verifier, http.HandlerFunc(handler.ListEligibleIncoming)))
	mux.Handle("PUT /v1/matches/{matchID}/substitutions/rounds/{round}", RequireAuth(verifier, http.HandlerFunc(handler.CommitSubstitutionRound)))
	mux.Handle("POST /v1/matches/{matchID}/substitutions/extra", RequireAuth(verifier, http.HandlerFunc(handler.AddExtraSubstitution)))
}

func registerAuthorizedVotingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/votes", RequireAuth(verifier, http.HandlerFunc(handler.SubmitVote)))
	mux.Handle("GET /v1/matches/{matchID}/podium", RequireAuth(verifier, http.HandlerFunc(handler.GetPodium)))
	mux.Handle("POST /v1/matches/{matchID}/payout", RequireAuth(verifier, http.HandlerFunc(handler.RunPayout)))
	mux.Handle("GET /v1/teams/{teamID}/players/{origin}/{playerID}/balance", RequireAuth(verifier, http.HandlerFunc(handler.GetBalance)))
	mux.Handle("GET /v1/teams/{teamID}/players/{origin}/{playerID}/statement", RequireAuth(verifier, http.HandlerFunc(handler.GetStatement)))
}

func registerAuthorizedDashboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams/{teamID}/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamDashboard)))
}
