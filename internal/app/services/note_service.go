package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/app/repositories"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/filestorage"
)

// NoteService defines the interface for note upload, listing and download
type NoteService interface {
	UploadNote(ctx context.Context, courseID string, file *multipart.FileHeader, uploadedBy string) (*dto.NoteResponse, error)
	ListNotesForCourse(ctx context.Context, courseID string) (*dto.CourseNotesResponse, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	// OpenNoteFile resolves a note and opens its stored content. The caller closes the reader.
	OpenNoteFile(ctx context.Context, id string) (*models.Note, io.ReadCloser, error)
}

type noteServiceImpl struct {
	noteRepo    repositories.NoteRepository
	courseRepo  repositories.CourseRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo repositories.NoteRepository,
	courseRepo repositories.CourseRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:    noteRepo,
		courseRepo:  courseRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// UploadNote stores the file and records a note for the course
func (s *noteServiceImpl) UploadNote(ctx context.Context, courseID string, file *multipart.FileHeader, uploadedBy string) (*dto.NoteResponse, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, apperrors.NewBadRequestError("courseId is required")
	}
	if file == nil {
		return nil, apperrors.NewBadRequestError("noteFile is required")
	}

	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}

	info, err := s.fileStorage.Save(ctx, file, filestorage.NotesSubPath)
	if err != nil {
		s.logger.Error().Err(err).Str("courseID", courseID).Msg("Failed to store note file")
		return nil, fmt.Errorf("error storing note file: %w", err)
	}

	note := &models.Note{
		CourseID:    courseID,
		FilePath:    info.Path,
		FileName:    info.Filename,
		ContentType: info.MimeType,
		FileSize:    info.FileSize,
		UploadedBy:  uploadedBy,
	}
	if err := s.noteRepo.CreateNote(ctx, note); err != nil {
		// The record is the only reference to the file
		if delErr := s.fileStorage.Delete(context.WithoutCancel(ctx), info.Path); delErr != nil {
			s.logger.Error().Err(delErr).Str("path", info.Path).Msg("Failed to remove orphaned note file")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	s.logger.Info().
		Str("noteID", note.ID).
		Str("courseID", courseID).
		Str("uploadedBy", uploadedBy).
		Int64("size", note.FileSize).
		Msg("Note uploaded")
	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

// ListNotesForCourse returns the course with its notes
func (s *noteServiceImpl) ListNotesForCourse(ctx context.Context, courseID string) (*dto.CourseNotesResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}

	notes, err := s.noteRepo.GetNotesByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	resp := dto.NewCourseNotesResponse(course, notes)
	return &resp, nil
}

// GetNote returns a note record or ErrNoteNotFound
func (s *noteServiceImpl) GetNote(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return note, nil
}

// OpenNoteFile resolves the note and opens the stored file
func (s *noteServiceImpl) OpenNoteFile(ctx context.Context, id string) (*models.Note, io.ReadCloser, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.fileStorage.Open(ctx, note.FilePath)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrFileNotFound) {
			s.logger.Warn().Str("noteID", id).Str("path", note.FilePath).Msg("Note record points at a missing file")
		}
		return nil, nil, fmt.Errorf("error opening note file: %w", err)
	}
	return note, content, nil
}
