package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"impactready/internal/model"
)

// AnswerRepo handles MongoDB operations for persisted answers. One document
// per (run, question); batch saves upsert the full snapshot.
type AnswerRepo interface {
	UpsertBatch(ctx context.Context, runID string, answers map[string]model.AnswerValue) error
	GetByRunID(ctx context.Context, runID string) (map[string]model.AnswerValue, error)
	DeleteByRunID(ctx context.Context, runID string) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) docID(runID, questionCode string) string {
	return fmt.Sprintf("%s:%s", runID, questionCode)
}

func (r *answerRepo) UpsertBatch(ctx context.Context, runID string, answers map[string]model.AnswerValue) error {
	if len(answers) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(answers))
	now := time.Now()
	for code, v := range answers {
		doc := model.Answer{
			ID:           r.docID(runID, code),
			RunID:        runID,
			QuestionCode: code,
			Value:        v,
			UpdatedAt:    now,
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	opts := options.BulkWrite().SetOrdered(false)
	_, err := r.collection.BulkWrite(ctx, writes, opts)
	return err
}

func (r *answerRepo) GetByRunID(ctx context.Context, runID string) (map[string]model.AnswerValue, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"runId": runID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	out := make(map[string]model.AnswerValue, len(answers))
	for _, a := range answers {
		out[a.QuestionCode] = a.Value
	}
	return out, nil
}

func (r *answerRepo) DeleteByRunID(ctx context.Context, runID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"runId": runID})
	return err
}
