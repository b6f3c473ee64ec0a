// internal/app/features/standards/handler.go
package standards

import (
	"fmt"
	"net/http"
	"strings"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for standar mutu and the
// indikator and pertanyaan nested beneath them.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	locks *ordering.Locker
}

// NewHandler constructs a standards Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		locks: &ordering.Locker{},
	}
}

func (h *Handler) store() *standarstore.Store { return standarstore.New(h.DB) }

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, name)))
	return oid, err == nil
}

func indikatorLockKey(standarID primitive.ObjectID) string {
	return fmt.Sprintf("indikator:%s", standarID.Hex())
}

func pertanyaanLockKey(indikatorID primitive.ObjectID) string {
	return fmt.Sprintf("pertanyaan:%s", indikatorID.Hex())
}
