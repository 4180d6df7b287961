package migrations

import (
	"context"
	"fmt"

	"github.com/yigit/coursenotes/internal/app/repositories/mongodb"
	"github.com/yigit/coursenotes/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the indexes the mongo repositories rely on.
// The unique username index is what rejects duplicate registrations.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		mongodb.UsersCollection: {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		mongodb.NotesCollection: {
			Keys:    bson.D{{Key: "courseId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("course_created"),
		},
	}

	for collection, model := range indexes {
		name, err := database.Collection(collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", collection, err)
		}
		logger.Debug().Str("collection", collection).Str("index", name).Msg("Mongo index ensured")
	}
	return nil
}
