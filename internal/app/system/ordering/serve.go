package ordering

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/metrics"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Target describes the sibling set a reorder endpoint rewrites.
type Target struct {
	Engine   Engine
	ParentID primitive.ObjectID
	Locks    *Locker
	LockKey  string

	Collection string // metrics and log label
	Noun       string // plural, for "One or more <noun> do not exist."
	Flash      string
}

// Summary is the data payload of a successful reorder.
type Summary struct {
	Submitted int   `json:"submitted"`
	Matched   int64 `json:"matched"`
	Modified  int64 `json:"modified"`
}

type reorderBody struct {
	IDs []string `json:"ids"`
}

// ServeReorder decodes {"ids": [...]} from r and applies it to t.
//
// Empty, malformed, duplicate or unknown ids answer 422 on "ids". Ids of
// another parent are skipped and counted; omitted siblings keep their
// order. The caller has already authorized the request and resolved the
// parent.
func ServeReorder(ctx context.Context, w http.ResponseWriter, r *http.Request, log *zap.Logger, t Target) {
	var in reorderBody
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ids, err := ValidateIDs(in.IDs)
	if err != nil {
		log.Debug("reorder rejected", zap.String("collection", t.Collection), zap.Error(err))
		respond.ValidationField(w, "ids", idsMessage(err))
		return
	}

	unlock := t.Locks.Lock(t.LockKey)
	defer unlock()

	missing, err := t.Engine.Missing(ctx, ids)
	if err != nil {
		respond.ServerError(w, r, log, "reorder: existence check failed", err)
		return
	}
	if len(missing) > 0 {
		log.Debug("reorder rejected: unknown ids",
			zap.String("collection", t.Collection), zap.Int("missing", len(missing)))
		respond.ValidationField(w, "ids", "One or more "+t.Noun+" do not exist.")
		return
	}

	res, err := t.Engine.Reorder(ctx, t.ParentID, ids)
	if err != nil {
		respond.ServerError(w, r, log, "reorder "+t.Collection+" failed", err)
		return
	}
	metrics.RecordReorder(t.Collection, res.Skipped())
	if res.Skipped() > 0 {
		log.Info("reorder skipped ids of another parent",
			zap.String("collection", t.Collection),
			zap.String("parent_id", t.ParentID.Hex()),
			zap.Int64("skipped", res.Skipped()))
	}

	respond.Flash(w, t.Flash, Summary{
		Submitted: res.Submitted,
		Matched:   res.Matched,
		Modified:  res.Modified,
	})
}

func idsMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoIDs):
		return "At least one id is required."
	case errors.Is(err, ErrMalformedID):
		return "Every id must be a valid ID."
	case errors.Is(err, ErrDuplicateID):
		return "Each id may appear only once."
	}
	return "The submitted order is invalid."
}

// AssignOrRespond runs Engine.Assign for a create or edit handler. When the
// explicit order is taken it answers 422 on "order"; on a lookup failure it
// answers 500. It reports whether the handler may continue.
func AssignOrRespond(ctx context.Context, w http.ResponseWriter, r *http.Request, log *zap.Logger, eng Engine, parentID primitive.ObjectID, explicit *int, except primitive.ObjectID) (int, bool) {
	order, err := eng.Assign(ctx, parentID, explicit, except)
	if errors.Is(err, ErrOrderTaken) {
		respond.ValidationField(w, "order", "Another item already holds this position.")
		return 0, false
	}
	if err != nil {
		respond.ServerError(w, r, log, "assign order failed", err)
		return 0, false
	}
	return order, true
}
