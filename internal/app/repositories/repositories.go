package repositories

import (
	"context"

	"github.com/yigit/coursenotes/internal/app/models"
)

// UserRepository persists portal accounts. Usernames are unique.
type UserRepository interface {
	// CreateUser inserts the user and fills in ID and CreatedAt.
	// Returns apperrors.ErrDuplicateUser when the username is taken.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByUsername returns apperrors.ErrUserNotFound for unknown usernames
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CourseRepository persists course metadata
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	// GetAllCourses returns every course ordered by creation time
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	CountCourses(ctx context.Context) (int64, error)
}

// NoteRepository persists note records
type NoteRepository interface {
	CreateNote(ctx context.Context, note *models.Note) error
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
	// GetNotesByCourseID returns the notes of a course ordered by creation time
	GetNotesByCourseID(ctx context.Context, courseID string) ([]*models.Note, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository   UserRepository
	CourseRepository CourseRepository
	NoteRepository   NoteRepository
}
