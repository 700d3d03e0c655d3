package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"impactready/internal/model"
)

// RunRepo handles MongoDB operations for assessment runs
type RunRepo interface {
	Create(ctx context.Context, run *model.Run) error
	GetByID(ctx context.Context, id string) (*model.Run, error)
	GetDraftByUser(ctx context.Context, userID string) (*model.Run, error)
	GetLatestByUser(ctx context.Context, userID string) (*model.Run, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Run, error)
	MarkSubmitted(ctx context.Context, id string, submittedAt, cooldownUntil time.Time) error
}

type runRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new run repository
func NewRunRepo(db *mongo.Database) RunRepo {
	return &runRepo{
		collection: db.Collection("runs"),
	}
}

func (r *runRepo) Create(ctx context.Context, run *model.Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, run)
	return err
}

func (r *runRepo) GetByID(ctx context.Context, id string) (*model.Run, error) {
	var run model.Run
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepo) GetDraftByUser(ctx context.Context, userID string) (*model.Run, error) {
	var run model.Run
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "status": model.RunStatusDraft}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepo) GetLatestByUser(ctx context.Context, userID string) (*model.Run, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	var run model.Run
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepo) ListByUser(ctx context.Context, userID string) ([]*model.Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*model.Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *runRepo) MarkSubmitted(ctx context.Context, id string, submittedAt, cooldownUntil time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":        model.RunStatusSubmitted,
		"submittedAt":   submittedAt,
		"cooldownUntil": cooldownUntil,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
