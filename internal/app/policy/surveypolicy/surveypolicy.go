// internal/app/policy/surveypolicy/surveypolicy.go
package surveypolicy

import (
	"context"
	"errors"

	surveystore "github.com/dalemusser/mutuhub/internal/app/store/surveys"
	optionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyoptions"
	questionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyquestions"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound covers both a missing record and a record that exists under
// a different parent, so callers cannot discover foreign ids.
var ErrNotFound = errors.New("not found")

// Chain resolves survey → question → option paths.
type Chain struct {
	surveys   *surveystore.Store
	questions *questionstore.Store
	options   *optionstore.Store
}

func NewChain(db *mongo.Database) *Chain {
	return &Chain{
		surveys:   surveystore.New(db),
		questions: questionstore.New(db),
		options:   optionstore.New(db),
	}
}

// Survey loads a survey.
func (c *Chain) Survey(ctx context.Context, surveyID primitive.ObjectID) (models.Survey, error) {
	sv, err := c.surveys.GetByID(ctx, surveyID)
	if errors.Is(err, surveystore.ErrNotFound) {
		return models.Survey{}, ErrNotFound
	}
	return sv, err
}

// Question loads questionID and checks it belongs to surveyID.
func (c *Chain) Question(ctx context.Context, surveyID, questionID primitive.ObjectID) (models.SurveyQuestion, error) {
	q, err := c.questions.GetInSurvey(ctx, surveyID, questionID)
	if errors.Is(err, questionstore.ErrNotFound) {
		return models.SurveyQuestion{}, ErrNotFound
	}
	return q, err
}

// QuestionByID loads a question regardless of survey.
func (c *Chain) QuestionByID(ctx context.Context, questionID primitive.ObjectID) (models.SurveyQuestion, error) {
	q, err := c.questions.GetByID(ctx, questionID)
	if errors.Is(err, questionstore.ErrNotFound) {
		return models.SurveyQuestion{}, ErrNotFound
	}
	return q, err
}

// Option loads optionID and checks it belongs to questionID.
func (c *Chain) Option(ctx context.Context, questionID, optionID primitive.ObjectID) (models.SurveyOption, error) {
	o, err := c.options.GetInQuestion(ctx, questionID, optionID)
	if errors.Is(err, optionstore.ErrNotFound) {
		return models.SurveyOption{}, ErrNotFound
	}
	return o, err
}

// CanModify reports whether p, acting as userID, may apply perm to sv.
// Admins may touch any survey; everyone else needs perm and must have
// created the survey (surveys without a recorded creator are open to any
// holder of perm).
func CanModify(p authz.Principal, userID string, perm authz.Permission, sv models.Survey) bool {
	if !p.Can(perm) {
		return false
	}
	if p.HasRole(authz.RoleAdmin) || sv.CreatedBy == nil {
		return true
	}
	return sv.CreatedBy.Hex() == userID
}
