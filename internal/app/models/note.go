package models

import "time"

// Note links an uploaded file to a course and the user who uploaded it.
// The file content lives in file storage under FilePath; only the record lives in the store.
type Note struct {
	ID          string    `json:"id" db:"id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	FilePath    string    `json:"-" db:"file_path"`
	FileName    string    `json:"fileName" db:"file_name"`
	ContentType string    `json:"contentType" db:"content_type"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	UploadedBy  string    `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
