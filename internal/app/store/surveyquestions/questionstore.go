// internal/app/store/surveyquestions/questionstore.go
package questionstore

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

// Collection is the questions collection name.
const Collection = "survey_questions"

var ErrNotFound = errors.New("survey question not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Ordering returns the engine that orders questions within a survey.
func (s *Store) Ordering() ordering.Engine {
	return ordering.Engine{Coll: s.c, ParentField: "survey_id"}
}

// NextOrder returns max(order)+1 among the survey's questions.
func (s *Store) NextOrder(ctx context.Context, surveyID primitive.ObjectID) (int, error) {
	return s.Ordering().NextOrder(ctx, surveyID)
}

func (s *Store) Create(ctx context.Context, q models.SurveyQuestion) (models.SurveyQuestion, error) {
	now := time.Now().UTC()
	q.ID = primitive.NewObjectID()
	q.CreatedAt = now
	q.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.SurveyQuestion{}, err
	}
	return q, nil
}

// GetInSurvey loads question id only when it belongs to surveyID.
func (s *Store) GetInSurvey(ctx context.Context, surveyID, id primitive.ObjectID) (models.SurveyQuestion, error) {
	var q models.SurveyQuestion
	err := s.c.FindOne(ctx, bson.M{"_id": id, "survey_id": surveyID}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SurveyQuestion{}, ErrNotFound
	}
	if err != nil {
		return models.SurveyQuestion{}, err
	}
	return q, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.SurveyQuestion, error) {
	var q models.SurveyQuestion
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SurveyQuestion{}, ErrNotFound
	}
	if err != nil {
		return models.SurveyQuestion{}, err
	}
	return q, nil
}

// ListBySurvey returns the survey's questions in display order.
func (s *Store) ListBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.SurveyQuestion, error) {
	cur, err := s.c.Find(ctx, bson.M{"survey_id": surveyID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SurveyQuestion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IDsBySurvey returns the ids of every question of surveyID.
func (s *Store) IDsBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"survey_id": surveyID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// Update replaces the text fields of question id within surveyID. The
// order is changed only when setOrder is true.
func (s *Store) Update(ctx context.Context, surveyID, id primitive.ObjectID, q models.SurveyQuestion, setOrder bool) error {
	set := bson.M{
		"pertanyaan": q.Pertanyaan,
		"tipe":       q.Tipe,
		"wajib":      q.Wajib,
		"updated_at": time.Now().UTC(),
	}
	if setOrder {
		set["order"] = q.Order
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "survey_id": surveyID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes question id within surveyID.
func (s *Store) Delete(ctx context.Context, surveyID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "survey_id": surveyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBySurvey removes every question of surveyID.
func (s *Store) DeleteBySurvey(ctx context.Context, surveyID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"survey_id": surveyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
