// Package mongodb implements the repositories on MongoDB. Documents use camelCase
// field names (courseId, uploadedBy, createdAt).
package mongodb

import (
	"time"

	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names
const (
	UsersCollection   = "users"
	CoursesCollection = "courses"
	NotesCollection   = "notes"
)

// NewRepositories initializes all repositories on the database
func NewRepositories(db *mongo.Database) *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:   NewUserRepository(db),
		CourseRepository: NewCourseRepository(db),
		NoteRepository:   NewNoteRepository(db),
	}
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type courseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	LiveLink    string             `bson:"liveLink"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *courseDocument) toModel() *models.Course {
	return &models.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		LiveLink:    d.LiveLink,
		CreatedAt:   d.CreatedAt,
	}
}

type noteDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CourseID    primitive.ObjectID `bson:"courseId"`
	FilePath    string             `bson:"filePath"`
	FileName    string             `bson:"fileName"`
	ContentType string             `bson:"contentType"`
	FileSize    int64              `bson:"fileSize"`
	UploadedBy  string             `bson:"uploadedBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *noteDocument) toModel() *models.Note {
	return &models.Note{
		ID:          d.ID.Hex(),
		CourseID:    d.CourseID.Hex(),
		FilePath:    d.FilePath,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		FileSize:    d.FileSize,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// now truncates to millisecond precision, which is what BSON dates store
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
