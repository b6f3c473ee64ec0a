// internal/app/features/units/handler.go
package units

import (
	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/hierarchy"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Units.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	// Strict turns on cycle, tipe-rank and leader-subtree checks.
	Strict bool
}

// NewHandler constructs a Units handler bound to a DB and logger.
func NewHandler(db *mongo.Database, strict bool, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Strict: strict,
	}
}

func (h *Handler) store() *unitstore.Store { return unitstore.New(h.DB) }

func (h *Handler) validator() hierarchy.Validator {
	return hierarchy.Validator{Strict: h.Strict, Lookup: h.store()}
}
