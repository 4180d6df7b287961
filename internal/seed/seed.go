package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursenotes/internal/app/models"
	appRepos "github.com/yigit/coursenotes/internal/app/repositories"
)

// DefaultCourse is inserted when seeding an empty catalog
var DefaultCourse = appModels.Course{
	Title:       "Introduction to Programming",
	Description: "Shared notes for the introductory programming course.",
}

// CreateDefaultData inserts the default course if the catalog is empty.
// Running it against a populated catalog is a no-op.
func CreateDefaultData(ctx context.Context, courseRepo appRepos.CourseRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses)...")

	count, err := courseRepo.CountCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("courses", count).Msg("Catalog not empty, skipping seed")
		return nil
	}

	course := DefaultCourse
	if err := courseRepo.CreateCourse(ctx, &course); err != nil {
		lgr.Error().Err(err).Msg("Error creating default course")
		return fmt.Errorf("failed to create default course: %w", err)
	}

	lgr.Info().Str("courseID", course.ID).Str("title", course.Title).Msg("Default course created")
	return nil
}
