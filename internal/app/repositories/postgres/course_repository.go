package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/dberrors"
	"github.com/yigit/coursenotes/internal/pkg/logger"
)

var courseColumns = []string{"id::text", "title", "description", "live_link", "created_at"}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(&course.ID, &course.Title, &course.Description, &course.LiveLink, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// CreateCourse inserts a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "live_link").
		Values(course.Title, course.Description, course.LiveLink).
		Suffix("RETURNING id::text, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt); err != nil {
		if dberrors.IsConnectionError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetAllCourses retrieves all courses, oldest first
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a single course
func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	if !validID(id) {
		return nil, apperrors.ErrCourseNotFound
	}
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing get course query")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// CountCourses returns the number of courses
func (r *CourseRepository) CountCourses(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}
	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
