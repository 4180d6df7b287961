package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/repositories/memory"
)

func TestCreateDefaultDataSeedsEmptyCatalogOnce(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(ctx, repos.CourseRepository, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	courses, err := repos.CourseRepository.GetAllCourses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected one seeded course, got %d", len(courses))
	}
	if courses[0].Title != DefaultCourse.Title {
		t.Errorf("unexpected title %q", courses[0].Title)
	}
}

func TestCreateDefaultDataSkipsPopulatedCatalog(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	ctx := context.Background()

	if err := repos.CourseRepository.CreateCourse(ctx, &models.Course{Title: "Databases"}); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultData(ctx, repos.CourseRepository, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	count, err := repos.CourseRepository.CountCourses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected catalog untouched, got %d courses", count)
	}
}
