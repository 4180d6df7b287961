package filestorage

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// NotesSubPath is the directory (or key prefix) note files are stored under
const NotesSubPath = "notes"

const maxExtensionLength = 16

// generateName returns a collision-resistant name keeping the original extension.
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > maxExtensionLength || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.New().String() + ext
}

// objectPath joins subPath and name with forward slashes
func objectPath(subPath, name string) string {
	if subPath == "" {
		return name
	}
	return path.Join(strings.Trim(subPath, "/"), name)
}

// detectContentType sniffs the content and rewinds the reader
func detectContentType(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	return mtype.String(), nil
}
