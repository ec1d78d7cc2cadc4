package repository

import (
	"context"
	"desafiabrasil/internal/model"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)

	// ApplyExamResult adds points, counts one more exam and appends badges
	// without duplicates. Returns the updated user, or nil if it does not exist.
	ApplyExamResult(ctx context.Context, id string, points int, badges []string) (*model.User, error)

	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	TopByScore(ctx context.Context, limit int) ([]*model.User, error)
	SetRole(ctx context.Context, id, role string) (*model.User, error)
}

type userRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

// EnsureUserIndexes creates the unique email index and the ranking index
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "totalScore", Value: -1}}},
	})
	return err
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Badges == nil {
		user.Badges = []string{}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ApplyExamResult(ctx context.Context, id string, points int, badges []string) (*model.User, error) {
	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"totalScore": points, "examsCompleted": 1},
		"$set": bson.M{"lastExamAt": now, "updatedAt": now},
	}
	if len(badges) > 0 {
		update["$addToSet"] = bson.M{"badges": bson.M{"$each": badges}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	return r.find(ctx, bson.M{}, opts)
}

func (r *userRepo) TopByScore(ctx context.Context, limit int) ([]*model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalScore", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"examsCompleted": bson.M{"$gt": 0}}, opts)
}

func (r *userRepo) SetRole(ctx context.Context, id, role string) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
