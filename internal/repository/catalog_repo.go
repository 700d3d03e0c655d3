package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"impactready/internal/model"
)

// CatalogRepo handles MongoDB operations for the admin-authored question catalog
type CatalogRepo interface {
	GetSections(ctx context.Context) ([]model.Section, error)
	ReplaceAll(ctx context.Context, sections []model.Section) error
}

type catalogRepo struct {
	collection *mongo.Collection
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *mongo.Database) CatalogRepo {
	return &catalogRepo{
		collection: db.Collection("sections"),
	}
}

func (r *catalogRepo) GetSections(ctx context.Context) ([]model.Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sections []model.Section
	if err := cursor.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *catalogRepo) ReplaceAll(ctx context.Context, sections []model.Section) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	docs := make([]interface{}, len(sections))
	for i := range sections {
		docs[i] = sections[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
