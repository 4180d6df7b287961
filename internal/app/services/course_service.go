package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/app/repositories"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	ListCourses(ctx context.Context) (*dto.CourseListResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error)
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// ListCourses returns the whole catalog, oldest first
func (s *courseServiceImpl) ListCourses(ctx context.Context) (*dto.CourseListResponse, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	resp := dto.NewCourseListResponse(courses)
	return &resp, nil
}

// CreateCourse adds a course. Any authenticated user may do this.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		LiveLink:    strings.TrimSpace(req.LiveLink),
	}
	if course.Title == "" {
		return nil, apperrors.NewBadRequestError("title is required")
	}

	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// GetCourse returns one course or ErrCourseNotFound
func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}
