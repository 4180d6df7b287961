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

var noteColumns = []string{
	"id::text", "course_id::text", "file_path", "file_name", "content_type",
	"file_size", "uploaded_by", "created_at",
}

// NoteRepository handles database operations for notes
type NoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// scanNote scans a row into a Note
func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.CourseID, &note.FilePath, &note.FileName, &note.ContentType,
		&note.FileSize, &note.UploadedBy, &note.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// CreateNote inserts a new note record
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) error {
	if !validID(note.CourseID) {
		return apperrors.ErrCourseNotFound
	}
	sql, args, err := r.sb.Insert("notes").
		Columns("course_id", "file_path", "file_name", "content_type", "file_size", "uploaded_by").
		Values(note.CourseID, note.FilePath, note.FileName, note.ContentType, note.FileSize, note.UploadedBy).
		Suffix("RETURNING id::text, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return fmt.Errorf("failed to build create note query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&note.ID, &note.CreatedAt); err != nil {
		if dberrors.IsConnectionError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", note.CourseID).Msg("Error executing create note query")
		return fmt.Errorf("error creating note: %w", err)
	}

	logger.Info().Str("noteID", note.ID).Str("courseID", note.CourseID).Str("uploadedBy", note.UploadedBy).Msg("Note created successfully")
	return nil
}

// GetNoteByID retrieves a single note
func (r *NoteRepository) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	if !validID(id) {
		return nil, apperrors.ErrNoteNotFound
	}
	sql, args, err := r.sb.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note SQL")
		return nil, fmt.Errorf("failed to build get note query: %w", err)
	}

	note, err := scanNote(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			return nil, err
		}
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("noteID", id).Msg("Error executing get note query")
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return note, nil
}

// GetNotesByCourseID lists the notes of a course, oldest first
func (r *NoteRepository) GetNotesByCourseID(ctx context.Context, courseID string) ([]*models.Note, error) {
	notes := make([]*models.Note, 0)
	if !validID(courseID) {
		return notes, nil
	}
	sql, args, err := r.sb.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, fmt.Errorf("failed to build list notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
		}
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error executing list notes query")
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning note row")
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}
