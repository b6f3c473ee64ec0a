// Package health reports whether the server can reach its MongoDB database.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// Status is the data payload of GET /health.
type Status struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	LatencyMS int64  `json:"latency_ms"`
}

// Serve answers 200 with {"status":"ok"} when the database responds to a
// ping within timeouts.Ping, and 503 with {"status":"error"} otherwise.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	start := time.Now()
	err := h.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	st := Status{Status: "ok", Database: h.DB.Name(), LatencyMS: time.Since(start).Milliseconds()}

	if err != nil {
		h.Log.Warn("health: ping failed", zap.String("database", st.Database), zap.Error(err))
		st.Status = "error"
		respond.JSON(w, http.StatusServiceUnavailable, respond.Body{Message: "Database unavailable.", Data: st})
		return
	}
	respond.OK(w, st)
}
