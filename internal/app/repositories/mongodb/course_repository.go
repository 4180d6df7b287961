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

// CourseRepository handles course documents
type CourseRepository struct {
	coll *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(CoursesCollection)}
}

// CreateCourse inserts a course document
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	doc := courseDocument{
		Title:       course.Title,
		Description: course.Description,
		LiveLink:    course.LiveLink,
		CreatedAt:   now(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("title", course.Title).Msg("Error inserting course document")
		return fmt.Errorf("error creating course: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	course.ID = oid.Hex()
	course.CreatedAt = doc.CreatedAt
	return nil
}

// GetAllCourses lists all courses, oldest first
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Msg("Error listing course documents")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := make([]*models.Course, 0)
	for cursor.Next(ctx) {
		var doc courseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding course: %w", err)
		}
		courses = append(courses, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID finds a course by its hex ObjectID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrCourseNotFound
	}

	var doc courseDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCourseNotFound
		}
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error finding course document")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return doc.toModel(), nil
}

// CountCourses returns the number of course documents
func (r *CourseRepository) CountCourses(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
