package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
)

const cricketSport = admin.SportCricket

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/cricket/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/cricket/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /api/cricket/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /api/cricket/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/cricket/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /api/cricket/matches/{matchID}/live", handler.MatchLiveFeed)
	mux.HandleFunc("GET /api/cricket/scoring/matches/{matchID}/balls", handler.ListDeliveries)
	mux.HandleFunc("GET /api/cricket/scoring/matches/{matchID}/summary", handler.GetMatchSummary)

	mux.HandleFunc("POST /api/superadmin/login", handler.LoginSuperAdmin)
	mux.HandleFunc("POST /api/subadmin/login", handler.LoginSubAdmin)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerTeamRoutes(mux, handler, verifier)
	registerMatchRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
}

func withCapability(verifier TokenVerifier, capability admin.Capability, h http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequirePermission(capability, cricketSport, h))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/cricket/teams/stats", withCapability(verifier, admin.CapViewReports, handler.GetTeamsOverview))
	mux.Handle("POST /api/cricket/teams", withCapability(verifier, admin.CapManageTeams, handler.CreateTeam))
	mux.Handle("PUT /api/cricket/teams/{teamID}", withCapability(verifier, admin.CapManageTeams, handler.UpdateTeam))
	mux.Handle("DELETE /api/cricket/teams/{teamID}", withCapability(verifier, admin.CapManageTeams, handler.DeleteTeam))

	mux.Handle("POST /api/cricket/teams/{teamID}/players", withCapability(verifier, admin.CapManagePlayers, handler.AddPlayer))
	mux.Handle("PUT /api/cricket/teams/{teamID}/players/{playerID}", withCapability(verifier, admin.CapManagePlayers, handler.UpdatePlayer))
	mux.Handle("DELETE /api/cricket/teams/{teamID}/players/{playerID}", withCapability(verifier, admin.CapManagePlayers, handler.DeletePlayer))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/cricket/matches", withCapability(verifier, admin.CapManageMatches, handler.CreateMatch))
	mux.Handle("PUT /api/cricket/matches/{matchID}/score", withCapability(verifier, admin.CapManageMatches, handler.UpdateMatchScore))
	mux.Handle("DELETE /api/cricket/matches/{matchID}", withCapability(verifier, admin.CapManageMatches, handler.DeleteMatch))

	mux.Handle("POST /api/cricket/scoring/matches/{matchID}/balls", withCapability(verifier, admin.CapManageMatches, handler.RecordDelivery))
	mux.Handle("DELETE /api/cricket/scoring/matches/{matchID}/balls/last", withCapability(verifier, admin.CapManageMatches, handler.UndoLastDelivery))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/superadmin/register", OptionalAuth(verifier, http.HandlerFunc(handler.RegisterSuperAdmin)))
	mux.Handle("GET /api/superadmin/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))

	superOnly := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireSuperAdmin(h))
	}
	mux.Handle("POST /api/superadmin/subadmins", superOnly(handler.CreateSubAdmin))
	mux.Handle("GET /api/superadmin/subadmins", superOnly(handler.ListSubAdmins))
	mux.Handle("PUT /api/superadmin/subadmins/{adminID}", superOnly(handler.UpdateSubAdmin))
	mux.Handle("DELETE /api/superadmin/subadmins/{adminID}", superOnly(handler.DeactivateSubAdmin))
}
