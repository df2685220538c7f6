package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Journal routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/journal", handler.GetJournal).Methods("GET")
	api.HandleFunc("/journal", handler.AddJournalEntry).Methods("POST")
	api.HandleFunc("/journal/stats", handler.GetJournalStats).Methods("GET")
	api.HandleFunc("/position-size", handler.CalculatePositionSize).Methods("POST")

	return r
}
