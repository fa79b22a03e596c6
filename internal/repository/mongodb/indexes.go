package mongodb

import (
	"context"

	"notes-app-be/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The unique
// email index is what turns a concurrent duplicate signup into a
// duplicate-key rejection instead of a second account.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(model.User{}.CollectionName())
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	notes := db.Collection(model.Note{}.CollectionName())
	_, err := notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}
