package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/app/services"
	"github.com/yigit/coursenotes/internal/middleware"
)

// CourseController handles the course catalog
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns every course
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse adds a course and redirects to the catalog
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("courseID", course.ID).Str("by", ctx.GetString(middleware.UsernameKey)).Msg("Course added")
	ctx.Redirect(http.StatusSeeOther, "/courses")
}
