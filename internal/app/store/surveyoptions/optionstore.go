// internal/app/store/surveyoptions/optionstore.go
package optionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the options collection name.
const Collection = "survey_options"

var ErrNotFound = errors.New("survey option not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Ordering returns the engine that orders options within a question.
func (s *Store) Ordering() ordering.Engine {
	return ordering.Engine{Coll: s.c, ParentField: "question_id"}
}

// NextOrder returns max(order)+1 among the question's options.
func (s *Store) NextOrder(ctx context.Context, questionID primitive.ObjectID) (int, error) {
	return s.Ordering().NextOrder(ctx, questionID)
}

func (s *Store) Create(ctx context.Context, o models.SurveyOption) (models.SurveyOption, error) {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.SurveyOption{}, err
	}
	return o, nil
}

// GetInQuestion loads option id only when it belongs to questionID.
func (s *Store) GetInQuestion(ctx context.Context, questionID, id primitive.ObjectID) (models.SurveyOption, error) {
	var o models.SurveyOption
	err := s.c.FindOne(ctx, bson.M{"_id": id, "question_id": questionID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SurveyOption{}, ErrNotFound
	}
	if err != nil {
		return models.SurveyOption{}, err
	}
	return o, nil
}

// ListByQuestion returns the question's options in display order.
func (s *Store) ListByQuestion(ctx context.Context, questionID primitive.ObjectID) ([]models.SurveyOption, error) {
	cur, err := s.c.Find(ctx, bson.M{"question_id": questionID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SurveyOption{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces label and nilai of option id within questionID. The
// order is changed only when setOrder is true.
func (s *Store) Update(ctx context.Context, questionID, id primitive.ObjectID, o models.SurveyOption, setOrder bool) error {
	set := bson.M{
		"label":      o.Label,
		"nilai":      o.Nilai,
		"updated_at": time.Now().UTC(),
	}
	if setOrder {
		set["order"] = o.Order
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "question_id": questionID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes option id within questionID.
func (s *Store) Delete(ctx context.Context, questionID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "question_id": questionID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByQuestions removes every option of the given questions.
func (s *Store) DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) (int64, error) {
	if len(questionIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"question_id": bson.M{"$in": questionIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
