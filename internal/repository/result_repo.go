package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"impactready/internal/model"
)

// ResultRepo handles MongoDB operations for computed results
type ResultRepo interface {
	Create(ctx context.Context, result *model.Result) error
	GetByRunID(ctx context.Context, runID string) (*model.Result, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

func (r *resultRepo) Create(ctx context.Context, result *model.Result) error {
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

func (r *resultRepo) GetByRunID(ctx context.Context, runID string) (*model.Result, error) {
	var result model.Result
	err := r.collection.FindOne(ctx, bson.M{"runId": runID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
