package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/itbasis/go-clock"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	clock clock.Clock
}

func NewHealthHandler(db Pinger, clock clock.Clock) *HealthHandler {
	return &HealthHandler{db: db, clock: clock}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	respond(w, r, http.StatusOK, jsonResponse{
		"success":   true,
		"message":   "Sports Arena API is running",
		"timestamp": h.clock.Now().UTC().Format(time.RFC3339Nano),
	})
}
