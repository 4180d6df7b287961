package controllers

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/app/services"
	"github.com/yigit/coursenotes/internal/middleware"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// NoteFileField is the multipart field carrying the uploaded file
const NoteFileField = "noteFile"

// multipartMemory is how much of an upload is kept in memory before spilling to disk
const multipartMemory = 8 << 20

// NoteController handles note listing, upload and download
type NoteController struct {
	noteService    services.NoteService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, maxUploadBytes int64, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService:    noteService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ListNotes returns a course and its notes
func (c *NoteController) ListNotes(ctx *gin.Context) {
	notes, err := c.noteService.ListNotesForCourse(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// Upload stores a multipart note file and redirects to the course's notes
func (c *NoteController) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	if err := ctx.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.logger.Warn().Int64("limit", tooLarge.Limit).Msg("Upload rejected, body too large")
			middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, "Upload exceeds the size limit").
				WithDetails(map[string]interface{}{"limitBytes": tooLarge.Limit}))
			return
		}
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("expected a multipart/form-data upload"))
		return
	}

	var req dto.UploadNoteRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	file, err := ctx.FormFile(NoteFileField)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("noteFile is required"))
		return
	}

	uploader := ctx.GetString(middleware.UsernameKey)
	note, err := c.noteService.UploadNote(ctx.Request.Context(), req.CourseID, file, uploader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/notes/"+url.PathEscape(note.CourseID))
}

// Download streams a note file as an attachment
func (c *NoteController) Download(ctx *gin.Context) {
	note, content, err := c.noteService.OpenNoteFile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer content.Close()

	contentType := note.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	length := note.FileSize
	if length <= 0 {
		length = -1
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": note.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	ctx.DataFromReader(http.StatusOK, length, contentType, content, map[string]string{
		"Content-Disposition":    disposition,
		"X-Content-Type-Options": "nosniff",
	})
}
