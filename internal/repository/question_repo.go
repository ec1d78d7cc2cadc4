package repository

import (
	"context"
	"desafiabrasil/internal/model"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicate is returned when a unique index rejects an insert
var ErrDuplicate = errors.New("duplicate key")

type QuestionRepo interface {
	// Basic CRUD Operations
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error

	// Exam assembly
	FindBySubjectAndDifficulty(ctx context.Context, subject model.Subject, difficulties []model.Difficulty) ([]*model.Question, error)
	CountBySubjectAndDifficulty(ctx context.Context, subject model.Subject, difficulties []model.Difficulty) (int, error)

	// Grading
	IncrementAnswerStats(ctx context.Context, id string, correct bool) error

	// Moderation
	List(ctx context.Context, filter model.QuestionFilter) ([]*model.Question, error)
	SetReview(ctx context.Context, id string, status model.ReviewStatus, reviewerID string) (*model.Question, error)
	SetActive(ctx context.Context, id string, active bool) (*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

// EnsureQuestionIndexes creates the indexes exam assembly relies on
func EnsureQuestionIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("questions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "difficulty", Value: 1}, {Key: "active", Value: 1}, {Key: "approved", Value: 1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "rejected", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, question)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Question not found
		}
		return nil, err
	}
	return &question, nil
}

// Update replaces editable content; counters and review state are left alone
func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	question.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": question.ID}, bson.M{
		"$set": bson.M{
			"subject":       question.Subject,
			"difficulty":    question.Difficulty,
			"prompt":        question.Prompt,
			"options":       question.Options,
			"correctOption": question.CorrectOption,
			"explanation":   question.Explanation,
			"source":        question.Source,
			"year":          question.Year,
			"updatedAt":     question.UpdatedAt,
		},
	})
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func selectableFilter(subject model.Subject, difficulties []model.Difficulty) bson.M {
	filter := bson.M{
		"subject":  subject,
		"active":   true,
		"approved": true,
	}
	if len(difficulties) > 0 {
		filter["difficulty"] = bson.M{"$in": difficulties}
	}
	return filter
}

func (r *questionRepo) FindBySubjectAndDifficulty(ctx context.Context, subject model.Subject, difficulties []model.Difficulty) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, selectableFilter(subject, difficulties))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) CountBySubjectAndDifficulty(ctx context.Context, subject model.Subject, difficulties []model.Difficulty) (int, error) {
	n, err := r.collection.CountDocuments(ctx, selectableFilter(subject, difficulties))
	return int(n), err
}

// IncrementAnswerStats bumps the usage counters and recomputes the accuracy in a
// single pipeline update. Accuracy rounds half up: floor(100*correct/answered + 0.5).
func (r *questionRepo) IncrementAnswerStats(ctx context.Context, id string, correct bool) error {
	hit := 0
	if correct {
		hit = 1
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"timesAnswered": bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$timesAnswered", 0}}, 1}},
			"timesCorrect":  bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$timesCorrect", 0}}, hit}},
		}}},
		{{Key: "$set", Value: bson.M{
			"accuracyPercent": bson.M{"$toInt": bson.M{"$floor": bson.M{"$add": bson.A{
				bson.M{"$divide": bson.A{bson.M{"$multiply": bson.A{100, "$timesCorrect"}}, "$timesAnswered"}},
				0.5,
			}}}},
		}}},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *questionRepo) List(ctx context.Context, filter model.QuestionFilter) ([]*model.Question, error) {
	query := bson.M{}
	if filter.Subject != "" {
		query["subject"] = filter.Subject
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.AuthorID != "" {
		query["authorId"] = filter.AuthorID
	}
	switch filter.Status {
	case model.ReviewPending:
		query["approved"] = false
		query["rejected"] = bson.M{"$ne": true}
	case model.ReviewApproved:
		query["approved"] = true
	case model.ReviewRejected:
		query["rejected"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) SetReview(ctx context.Context, id string, status model.ReviewStatus, reviewerID string) (*model.Question, error) {
	now := time.Now()
	set := bson.M{
		"reviewedBy": reviewerID,
		"reviewedAt": now,
		"updatedAt":  now,
	}
	switch status {
	case model.ReviewApproved:
		set["approved"] = true
		set["rejected"] = false
		set["active"] = true
	case model.ReviewRejected:
		set["approved"] = false
		set["rejected"] = true
		set["active"] = false
	default:
		set["approved"] = false
		set["rejected"] = false
	}
	return r.findOneAndSet(ctx, id, set)
}

func (r *questionRepo) SetActive(ctx context.Context, id string, active bool) (*model.Question, error) {
	return r.findOneAndSet(ctx, id, bson.M{"active": active, "updatedAt": time.Now()})
}

func (r *questionRepo) findOneAndSet(ctx context.Context, id string, set bson.M) (*model.Question, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var question model.Question
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}
