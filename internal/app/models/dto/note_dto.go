package dto

import (
	"time"

	"github.com/yigit/coursenotes/internal/app/models"
)

// UploadNoteRequest represents the non-file fields of the upload form.
// The file itself arrives in the multipart field "noteFile".
type UploadNoteRequest struct {
	CourseID string `form:"courseId" json:"courseId" binding:"required"`
}

// NoteResponse represents a note in API answers
type NoteResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	FileName    string    `json:"fileName" example:"week1.pdf"`
	ContentType string    `json:"contentType" example:"application/pdf"`
	FileSize    int64     `json:"fileSize"`
	UploadedBy  string    `json:"uploadedBy" example:"alice"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseNotesResponse is the payload of a course's note listing
type CourseNotesResponse struct {
	Course CourseResponse `json:"course"`
	Notes  []NoteResponse `json:"notes"`
}

// NewNoteResponse converts a note model
func NewNoteResponse(note *models.Note) NoteResponse {
	return NoteResponse{
		ID:          note.ID,
		CourseID:    note.CourseID,
		FileName:    note.FileName,
		ContentType: note.ContentType,
		FileSize:    note.FileSize,
		UploadedBy:  note.UploadedBy,
		DownloadURL: "/download/" + note.ID,
		CreatedAt:   note.CreatedAt,
	}
}

// NewCourseNotesResponse builds the listing for one course
func NewCourseNotesResponse(course *models.Course, notes []*models.Note) CourseNotesResponse {
	resp := CourseNotesResponse{
		Course: NewCourseResponse(course),
		Notes:  make([]NoteResponse, 0, len(notes)),
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, NewNoteResponse(n))
	}
	return resp
}
