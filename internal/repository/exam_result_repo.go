package repository

import (
	"context"
	"desafiabrasil/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExamResultRepo stores the summary of every finished exam
type ExamResultRepo interface {
	Create(ctx context.Context, record *model.ExamRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.ExamRecord, error)
}

type examResultRepo struct {
	collection *mongo.Collection
}

func NewExamResultRepo(db *mongo.Database) ExamResultRepo {
	return &examResultRepo{
		collection: db.Collection("exam_results"),
	}
}

// EnsureExamResultIndexes indexes history lookups by user
func EnsureExamResultIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("exam_results").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	return err
}

func (r *examResultRepo) Create(ctx context.Context, record *model.ExamRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *examResultRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.ExamRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "finishedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ExamRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
