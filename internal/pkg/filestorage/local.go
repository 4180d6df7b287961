package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes the uploaded file to basePath/subPath under a generated name
func (ls *LocalStorage) Save(_ context.Context, fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("no file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("%w: failed to open uploaded file: %w", apperrors.ErrStorageFailure, err)
	}
	defer file.Close()

	contentType, err := detectContentType(file)
	if err != nil {
		return nil, err
	}

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("%w: failed to create subdirectory: %w", apperrors.ErrStorageFailure, err)
	}

	uniqueFilename := generateName(fileHeader.Filename)
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("%w: failed to create destination file: %w", apperrors.ErrStorageFailure, err)
	}

	written, err := io.Copy(dst, file)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("%w: failed to save file content: %w", apperrors.ErrStorageFailure, err)
	}

	info := &FileInfo{
		Path:     objectPath(subPath, uniqueFilename),
		Filename: filepath.Base(fileHeader.Filename),
		FileSize: written,
		MimeType: contentType,
	}
	logger.Info().Str("filename", info.Filename).Str("saved_as", info.Path).Int64("size", written).Msg("File saved successfully")
	return info, nil
}

// Open opens a stored file for reading
func (ls *LocalStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	physicalPath, err := ls.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(physicalPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("Stored file is missing")
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: failed to open stored file: %w", apperrors.ErrStorageFailure, err)
	}
	return f, nil
}

// Delete removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	physicalPath, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("%w: failed to delete file: %w", apperrors.ErrStorageFailure, err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// resolve maps a storage path onto the filesystem, refusing anything outside basePath.
func (ls *LocalStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid file path %q", apperrors.ErrFileNotFound, path)
	}
	return filepath.Join(ls.basePath, cleaned), nil
}
