package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/trade-journal-service/internal/kafka"
	"github.com/trogers1052/trade-journal-service/internal/models"
	"github.com/trogers1052/trade-journal-service/internal/sizer"
	"github.com/trogers1052/trade-journal-service/internal/store"
)

// TradeStore is the slice of the store the handlers need.
type TradeStore interface {
	AddTradeEntry(ctx context.Context, entry *models.TradeEntry) (string, error)
	GetTradeEntries(ctx context.Context, limit int) ([]models.TradeEntry, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    TradeStore
	producer *kafka.Producer
}

// NewHandler creates a new Handler. producer may be nil to disable
// event publishing.
func NewHandler(store TradeStore, producer *kafka.Producer) *Handler {
	return &Handler{
		store:    store,
		producer: producer,
	}
}

// journalEntryRequest is the submitted trade form. Timestamps are
// RFC 3339; pnl is derived, never accepted from the caller.
type journalEntryRequest struct {
	Symbol         string          `json:"symbol"`
	Direction      string          `json:"direction"`
	EntryPrice     decimal.Decimal `json:"entry_price"`
	ExitPrice      decimal.Decimal `json:"exit_price"`
	Size           decimal.Decimal `json:"size"`
	Notes          string          `json:"notes"`
	EntryTimestamp time.Time       `json:"entry_timestamp"`
	ExitTimestamp  time.Time       `json:"exit_timestamp"`
}

// AddJournalEntry handles POST /journal
func (h *Handler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req journalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := &models.TradeEntry{
		Symbol:         req.Symbol,
		Direction:      req.Direction,
		EntryPrice:     req.EntryPrice,
		ExitPrice:      req.ExitPrice,
		Size:           req.Size,
		Notes:          req.Notes,
		EntryTimestamp: req.EntryTimestamp,
		ExitTimestamp:  req.ExitTimestamp,
	}
	entry.Normalize()
	entry.Pnl = entry.DerivePnl()

	if err := entry.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.AddTradeEntry(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	entry.ID = id

	if h.producer != nil {
		if err := h.producer.PublishTradeRecorded(r.Context(), entry); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("failed to publish trade event")
		}
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"id":      id,
		"message": "trade entry for " + entry.Symbol + " added",
	})
}

// GetJournal handles GET /journal
func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.store.GetTradeEntries(r.Context(), limit)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if entries == nil {
		entries = []models.TradeEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetJournalStats handles GET /journal/stats
func (h *Handler) GetJournalStats(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.GetTradeEntries(r.Context(), 0)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ComputeStats(entries))
}

// CalculatePositionSize handles POST /position-size
func (h *Handler) CalculatePositionSize(w http.ResponseWriter, r *http.Request) {
	var req sizer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := sizer.Calculate(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// respondStoreError turns a store fault into the inline message the
// user sees; raw causes stay server-side in the logs.
func respondStoreError(w http.ResponseWriter, err error) {
	var opErr *store.OpError
	switch {
	case errors.Is(err, store.ErrNotInitialized):
		respondError(w, http.StatusServiceUnavailable,
			"trade journal database is not initialized: check GCP credentials")
	case errors.As(err, &opErr):
		respondError(w, http.StatusBadGateway, opErr.UserMessage())
	default:
		respondError(w, http.StatusInternalServerError, "unexpected error")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
