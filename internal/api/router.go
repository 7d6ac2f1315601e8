package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Persistence + local evaluation endpoints
	mux.HandleFunc("/api/saveResult", a.SaveResultHandler)
	mux.HandleFunc("/api/interview", a.InterviewHandler)

	// HR dashboard endpoints
	mux.HandleFunc("/api/results", a.ListResultsHandler)
	mux.HandleFunc("/api/stats", a.StatsHandler)

	// Server-driven interview stepper
	mux.HandleFunc("POST /api/session", a.CreateSessionHandler)
	mux.HandleFunc("POST /api/session/{id}/answer", a.SessionAnswerHandler)
	mux.HandleFunc("POST /api/session/{id}/next", a.SessionAdvanceHandler)
	mux.HandleFunc("POST /api/session/{id}/back", a.SessionBackHandler)
	mux.HandleFunc("POST /api/session/{id}/submit", a.SessionAdvanceHandler)

	return mux
}
