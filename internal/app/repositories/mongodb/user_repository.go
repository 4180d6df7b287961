package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/dberrors"
	"github.com/yigit/coursenotes/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles user documents. Uniqueness relies on the username index.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

// CreateUser inserts the user document
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	doc := userDocument{
		Username:  user.Username,
		Password:  user.PasswordHash,
		CreatedAt: now(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if dberrors.IsMongoDuplicateKey(err) {
			logger.Warn().Str("username", user.Username).Msg("Attempted to register an existing username")
			return apperrors.ErrDuplicateUser
		}
		if dberrors.IsConnectionError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error inserting user document")
		return fmt.Errorf("error creating user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()
	user.CreatedAt = doc.CreatedAt
	logger.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User created successfully")
	return nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("username", username).Msg("Error finding user document")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return doc.toModel(), nil
}
