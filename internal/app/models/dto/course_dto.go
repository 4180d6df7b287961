package dto

import (
	"time"

	"github.com/yigit/coursenotes/internal/app/models"
)

// CreateCourseRequest represents the add-course form
type CreateCourseRequest struct {
	Title       string `form:"title" json:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" json:"description" binding:"max=5000"`
	LiveLink    string `form:"liveLink" json:"liveLink" binding:"omitempty,url"`
}

// CourseResponse represents a course in API answers
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" example:"Algorithms"`
	Description string    `json:"description"`
	LiveLink    string    `json:"liveLink,omitempty"`
	NotesURL    string    `json:"notesUrl" example:"/notes/5b1d7c7e-3f9a-4c1e-9a7b-2f0c1d2e3f40"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseListResponse wraps the catalog
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// NewCourseResponse converts a course model
func NewCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		LiveLink:    course.LiveLink,
		NotesURL:    "/notes/" + course.ID,
		CreatedAt:   course.CreatedAt,
	}
}

// NewCourseListResponse converts a slice of courses
func NewCourseListResponse(courses []*models.Course) CourseListResponse {
	resp := CourseListResponse{Courses: make([]CourseResponse, 0, len(courses))}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, NewCourseResponse(c))
	}
	return resp
}
