// Package postgres implements the repositories on PostgreSQL with pgx and squirrel.
package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursenotes/internal/app/repositories"
)

// NewRepositories initializes all repositories on the pool
func NewRepositories(db *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:   NewUserRepository(db),
		CourseRepository: NewCourseRepository(db),
		NoteRepository:   NewNoteRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// validID reports whether id can name a row; ids are UUIDs
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
