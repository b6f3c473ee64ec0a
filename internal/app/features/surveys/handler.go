// internal/app/features/surveys/handler.go
package surveys

import (
	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	surveystore "github.com/dalemusser/mutuhub/internal/app/store/surveys"
	optionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyoptions"
	questionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyquestions"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for surveys, their questions
// and their options.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	chain *surveypolicy.Chain
	locks *ordering.Locker
}

// NewHandler constructs a surveys Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		chain: surveypolicy.NewChain(db),
		locks: &ordering.Locker{},
	}
}

func (h *Handler) surveys() *surveystore.Store { return surveystore.New(h.DB) }
func (h *Handler) questions() *questionstore.Store { return questionstore.New(h.DB) }
func (h *Handler) options() *optionstore.Store { return optionstore.New(h.DB) }
