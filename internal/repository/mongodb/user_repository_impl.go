package mongodb

import (
	"context"
	"errors"
	"time"

	"notes-app-be/internal/entity"
	"notes-app-be/internal/mapper"
	"notes-app-be/internal/model"
	"notes-app-be/internal/repository/contract"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepositoryImpl struct {
	coll   *mongo.Collection
	mapper *mapper.UserMapper
}

func NewUserRepository(db *mongo.Database) contract.UserRepository {
	return &UserRepositoryImpl{
		coll:   db.Collection(model.User{}.CollectionName()),
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return contract.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	return err
}

func (r *UserRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepositoryImpl) FindByEmailAndOtp(ctx context.Context, email, otp string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{
		{Key: "email", Value: email},
		{Key: "otp", Value: otp},
	})
}

func (r *UserRepositoryImpl) SetOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.updateOne(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "otp", Value: otp},
			{Key: "otp_expires_at", Value: expiresAt},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
}

func (r *UserRepositoryImpl) ClearOtp(ctx context.Context, id uuid.UUID) error {
	return r.updateOne(ctx, id, bson.D{
		{Key: "$unset", Value: bson.D{
			{Key: "otp", Value: ""},
			{Key: "otp_expires_at", Value: ""},
		}},
		{Key: "$set", Value: bson.D{
			{Key: "updated_at", Value: time.Now()},
		}},
	})
}

func (r *UserRepositoryImpl) LinkGoogle(ctx context.Context, id uuid.UUID, googleId string) error {
	return r.updateOne(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "google_id", Value: googleId},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	var m model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) updateOne(ctx context.Context, id uuid.UUID, update bson.D) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
