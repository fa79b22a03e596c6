package mongodb

import (
	"context"
	"errors"

	"notes-app-be/internal/entity"
	"notes-app-be/internal/mapper"
	"notes-app-be/internal/model"
	"notes-app-be/internal/repository/contract"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepositoryImpl struct {
	coll   *mongo.Collection
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *mongo.Database) contract.NoteRepository {
	return &NoteRepositoryImpl{
		coll:   db.Collection(model.Note{}.CollectionName()),
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	return err
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var m model.Note
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userId.String()}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Note
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
