// internal/app/system/ordering/ordering.go
package ordering

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultOrderField is the field rewritten by Reorder unless Engine.OrderField is set.
const DefaultOrderField = "order"

var (
	ErrNoIDs       = errors.New("ids must contain at least one id")
	ErrMalformedID = errors.New("malformed id")
	ErrDuplicateID = errors.New("duplicate id")

	// ErrOrderTaken is returned by Assign when another sibling already
	// holds the requested order.
	ErrOrderTaken = errors.New("order already held by a sibling")
)

// Position is one slot of a reorder plan.
type Position struct {
	ID    primitive.ObjectID
	Order int
}

// Positions maps each id to its 1-based index in ids.
func Positions(ids []primitive.ObjectID) []Position {
	out := make([]Position, len(ids))
	for i, id := range ids {
		out[i] = Position{ID: id, Order: i + 1}
	}
	return out
}

// Next returns the order for a new sibling when the current maximum is
// maxOrder. An empty sibling set (maxOrder 0) yields 1.
func Next(maxOrder int) int {
	if maxOrder < 0 {
		maxOrder = 0
	}
	return maxOrder + 1
}

// ValidateIDs parses a client-submitted ordering. It rejects an empty list,
// malformed hex ids and repeated ids.
func ValidateIDs(raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, ErrNoIDs
	}
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	ids := make([]primitive.ObjectID, 0, len(raw))
	for i, s := range raw {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("ids[%d]: %w", i, ErrMalformedID)
		}
		if _, dup := seen[oid]; dup {
			return nil, fmt.Errorf("ids[%d]: %w", i, ErrDuplicateID)
		}
		seen[oid] = struct{}{}
		ids = append(ids, oid)
	}
	return ids, nil
}

// Result reports what a Reorder touched. Matched counts ids that belong to
// the parent; the rest were skipped.
type Result struct {
	Submitted int
	Matched   int64
	Modified  int64
}

// Skipped is the number of submitted ids that did not belong to the parent.
func (r Result) Skipped() int64 {
	if s := int64(r.Submitted) - r.Matched; s > 0 {
		return s
	}
	return 0
}

// Engine maintains an integer order among records sharing ParentField.
type Engine struct {
	Coll        *mongo.Collection
	ParentField string
	OrderField  string
}

func (e Engine) orderField() string {
	if e.OrderField == "" {
		return DefaultOrderField
	}
	return e.OrderField
}

// NextOrder returns max(sibling order)+1 under parentID.
func (e Engine) NextOrder(ctx context.Context, parentID primitive.ObjectID) (int, error) {
	field := e.orderField()
	opts := options.FindOne().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetProjection(bson.M{field: 1})

	var doc bson.M
	err := e.Coll.FindOne(ctx, bson.M{e.ParentField: parentID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Next(0), nil
	}
	if err != nil {
		return 0, err
	}
	return Next(asInt(doc[field])), nil
}

// Taken reports whether a sibling under parentID other than except holds
// order. Pass primitive.NilObjectID as except for a new record.
func (e Engine) Taken(ctx context.Context, parentID primitive.ObjectID, order int, except primitive.ObjectID) (bool, error) {
	filter := bson.M{e.ParentField: parentID, e.orderField(): order}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}
	n, err := e.Coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Assign picks the order for a record under parentID. With no explicit
// order it is NextOrder; an explicit order is kept unless a sibling other
// than except holds it (ErrOrderTaken). Callers hold the parent's lock.
func (e Engine) Assign(ctx context.Context, parentID primitive.ObjectID, explicit *int, except primitive.ObjectID) (int, error) {
	if explicit == nil {
		return e.NextOrder(ctx, parentID)
	}
	taken, err := e.Taken(ctx, parentID, *explicit, except)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrOrderTaken
	}
	return *explicit, nil
}

// Missing returns the ids that do not exist in the collection at all,
// regardless of parent.
func (e Engine) Missing(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := e.Coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	found := make(map[primitive.ObjectID]struct{}, len(ids))
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		found[row.ID] = struct{}{}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	var missing []primitive.ObjectID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Reorder sets order=i (1-based) for the i-th id. Each update is filtered
// by parent as well as _id, so an id owned by another parent matches
// nothing and is skipped. Ids not submitted keep their order.
func (e Engine) Reorder(ctx context.Context, parentID primitive.ObjectID, ids []primitive.ObjectID) (Result, error) {
	res := Result{Submitted: len(ids)}
	if len(ids) == 0 {
		return res, nil
	}

	field := e.orderField()
	writes := make([]mongo.WriteModel, 0, len(ids))
	for _, p := range Positions(ids) {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": p.ID, e.ParentField: parentID}).
			SetUpdate(bson.M{"$set": bson.M{field: p.Order}}))
	}

	out, err := e.Coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return res, err
	}
	res.Matched = out.MatchedCount
	res.Modified = out.ModifiedCount
	return res, nil
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
