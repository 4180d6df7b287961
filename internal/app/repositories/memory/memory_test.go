package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

func TestDuplicateUserKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore())

	first := &models.User{Username: "alice", PasswordHash: "hash-1"}
	if err := repos.UserRepository.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("expected ID and CreatedAt to be set, got %+v", first)
	}

	second := &models.User{Username: "alice", PasswordHash: "hash-2"}
	if err := repos.UserRepository.CreateUser(ctx, second); !errors.Is(err, apperrors.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	got, err := repos.UserRepository.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != first.ID || got.PasswordHash != "hash-1" {
		t.Fatalf("first record was altered: %+v", got)
	}
}

func TestConcurrentRegistrationSingleWinner(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore())

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repos.UserRepository.CreateUser(ctx, &models.User{Username: "bob", PasswordHash: "x"}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", wins)
	}
}

func TestUnknownUser(t *testing.T) {
	repos := NewRepositories(NewStore())
	if _, err := repos.UserRepository.GetUserByUsername(context.Background(), "nobody"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCoursesAndNotes(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore())

	titles := []string{"Algo", "Databases", "Networks"}
	for _, title := range titles {
		if err := repos.CourseRepository.CreateCourse(ctx, &models.Course{Title: title}); err != nil {
			t.Fatalf("CreateCourse(%s): %v", title, err)
		}
	}

	courses, err := repos.CourseRepository.GetAllCourses(ctx)
	if err != nil {
		t.Fatalf("GetAllCourses: %v", err)
	}
	if len(courses) != len(titles) {
		t.Fatalf("expected %d courses, got %d", len(titles), len(courses))
	}
	for i, c := range courses {
		if c.Title != titles[i] {
			t.Fatalf("course %d: expected %q, got %q", i, titles[i], c.Title)
		}
	}
	if n, _ := repos.CourseRepository.CountCourses(ctx); n != 3 {
		t.Fatalf("expected 3 courses, got %d", n)
	}

	algo := courses[0]
	other := courses[1]
	for _, name := range []string{"a.pdf", "b.pdf"} {
		if err := repos.NoteRepository.CreateNote(ctx, &models.Note{CourseID: algo.ID, FileName: name, UploadedBy: "alice"}); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}
	if err := repos.NoteRepository.CreateNote(ctx, &models.Note{CourseID: other.ID, FileName: "c.pdf", UploadedBy: "bob"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	notes, err := repos.NoteRepository.GetNotesByCourseID(ctx, algo.ID)
	if err != nil {
		t.Fatalf("GetNotesByCourseID: %v", err)
	}
	if len(notes) != 2 || notes[0].FileName != "a.pdf" || notes[1].FileName != "b.pdf" {
		t.Fatalf("unexpected notes for course: %+v", notes)
	}

	got, err := repos.NoteRepository.GetNoteByID(ctx, notes[1].ID)
	if err != nil {
		t.Fatalf("GetNoteByID: %v", err)
	}
	if got.UploadedBy != "alice" {
		t.Fatalf("expected uploader alice, got %q", got.UploadedBy)
	}

	if _, err := repos.NoteRepository.GetNoteByID(ctx, "missing"); !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if _, err := repos.CourseRepository.GetCourseByID(ctx, "missing"); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore())
	course := &models.Course{Title: "Algo"}
	if err := repos.CourseRepository.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	course.Title = "changed"

	got, err := repos.CourseRepository.GetCourseByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCourseByID: %v", err)
	}
	if got.Title != "Algo" {
		t.Fatalf("store shares memory with caller: %q", got.Title)
	}
}
