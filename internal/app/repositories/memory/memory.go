// Package memory implements the repositories in process memory. It backs the
// "memory" database driver and the test suites.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/repositories"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// Store holds every record behind one lock. The order slices keep insertion order,
// which is creation order.
type Store struct {
	mu          sync.RWMutex
	users       map[string]models.User // keyed by username
	courses     map[string]models.Course
	courseOrder []string
	notes       map[string]models.Note
	noteOrder   []string
	now         func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		courses: make(map[string]models.Course),
		notes:   make(map[string]models.Note),
		now:     time.Now,
	}
}

// NewRepositories exposes the store through the repository interfaces
func NewRepositories(s *Store) *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:   (*UserRepository)(s),
		CourseRepository: (*CourseRepository)(s),
		NoteRepository:   (*NoteRepository)(s),
	}
}

// UserRepository is the user view of a Store
type UserRepository Store

// CreateUser inserts the user unless the username is taken
func (r *UserRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return apperrors.ErrDuplicateUser
	}
	user.ID = uuid.New().String()
	user.CreatedAt = r.now()
	r.users[user.Username] = *user
	return nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// CourseRepository is the course view of a Store
type CourseRepository Store

// CreateCourse inserts a course
func (r *CourseRepository) CreateCourse(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	course.ID = uuid.New().String()
	course.CreatedAt = r.now()
	r.courses[course.ID] = *course
	r.courseOrder = append(r.courseOrder, course.ID)
	return nil
}

// GetAllCourses lists all courses, oldest first
func (r *CourseRepository) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	courses := make([]*models.Course, 0, len(r.courseOrder))
	for _, id := range r.courseOrder {
		c := r.courses[id]
		courses = append(courses, &c)
	}
	return courses, nil
}

// GetCourseByID retrieves a single course
func (r *CourseRepository) GetCourseByID(_ context.Context, id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &course, nil
}

// CountCourses returns the number of courses
func (r *CourseRepository) CountCourses(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.courses)), nil
}

// NoteRepository is the note view of a Store
type NoteRepository Store

// CreateNote inserts a note record
func (r *NoteRepository) CreateNote(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = uuid.New().String()
	note.CreatedAt = r.now()
	r.notes[note.ID] = *note
	r.noteOrder = append(r.noteOrder, note.ID)
	return nil
}

// GetNoteByID retrieves a single note
func (r *NoteRepository) GetNoteByID(_ context.Context, id string) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return &note, nil
}

// GetNotesByCourseID lists the notes of a course, oldest first
func (r *NoteRepository) GetNotesByCourseID(_ context.Context, courseID string) ([]*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]*models.Note, 0)
	for _, id := range r.noteOrder {
		if n := r.notes[id]; n.CourseID == courseID {
			notes = append(notes, &n)
		}
	}
	return notes, nil
}
