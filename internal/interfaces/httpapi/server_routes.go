package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPoolRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users", handler.ListUsers)
	mux.HandleFunc("GET /v1/fixtures", handler.ListTodaysFixtures)
	mux.HandleFunc("GET /v1/fixtures/open", handler.GetOpenFixtures)
	mux.HandleFunc("POST /v1/picks", handler.SubmitPicks)
	mux.HandleFunc("GET /v1/picks/export", handler.ExportPicks)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}
