package filestorage

import (
	"context"
	"io"
	"mime/multipart"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // Storage-relative path (or object key) of the stored file
	Filename string // Original filename as uploaded
	FileSize int64  // Size in bytes
	MimeType string // Detected MIME type of the content
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores an uploaded file under subPath with a generated name
	Save(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// Open returns the content of a stored file; apperrors.ErrFileNotFound if it is gone
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file from storage. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
