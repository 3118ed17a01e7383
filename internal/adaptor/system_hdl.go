package adaptor

import (
	"context"
	"net/http"
	"time"

	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewSystemHandler(db Pinger, log *zap.Logger) *SystemHandler {
	return &SystemHandler{
		db:  db,
		log: log.With(zap.String("handler", "system")),
	}
}

// Ping handles GET /ping
func (h *SystemHandler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "pong!", nil)
}

// Health handles GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "database unreachable")
		return
	}

	utils.ResponseSuccess(w, "OK", nil)
}
