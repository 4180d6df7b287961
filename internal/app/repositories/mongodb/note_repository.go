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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NoteRepository handles note documents
type NoteRepository struct {
	coll *mongo.Collection
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(NotesCollection)}
}

// CreateNote inserts a note document
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) error {
	courseID, err := primitive.ObjectIDFromHex(note.CourseID)
	if err != nil {
		return apperrors.ErrCourseNotFound
	}
	doc := noteDocument{
		CourseID:    courseID,
		FilePath:    note.FilePath,
		FileName:    note.FileName,
		ContentType: note.ContentType,
		FileSize:    note.FileSize,
		UploadedBy:  note.UploadedBy,
		CreatedAt:   now(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", note.CourseID).Msg("Error inserting note document")
		return fmt.Errorf("error creating note: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	note.ID = oid.Hex()
	note.CreatedAt = doc.CreatedAt
	logger.Info().Str("noteID", note.ID).Str("courseID", note.CourseID).Str("uploadedBy", note.UploadedBy).Msg("Note created successfully")
	return nil
}

// GetNoteByID finds a note by its hex ObjectID
func (r *NoteRepository) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNoteNotFound
	}

	var doc noteDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNoteNotFound
		}
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("noteID", id).Msg("Error finding note document")
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return doc.toModel(), nil
}

// GetNotesByCourseID lists the notes of a course, oldest first
func (r *NoteRepository) GetNotesByCourseID(ctx context.Context, courseID string) ([]*models.Note, error) {
	notes := make([]*models.Note, 0)
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return notes, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"courseId": oid}, opts)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error listing note documents")
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc noteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding note: %w", err)
		}
		notes = append(notes, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}
