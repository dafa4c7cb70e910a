package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/model"
)

// ResponseRepo handles MongoDB operations for submitted responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	GetByID(ctx context.Context, id string) (*model.Response, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.Response, error)
	ExistsForRespondent(ctx context.Context, formID, respondentID string) (bool, error)
	Update(ctx context.Context, response *model.Response) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	var response model.Response
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) ExistsForRespondent(ctx context.Context, formID, respondentID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"formId": formID, "respondentId": respondentID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *responseRepo) Update(ctx context.Context, response *model.Response) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": response.ID}, response)
	return err
}
