// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"
	"time"

	"github.com/good-yellow-bee/practicelog/internal/models"
)

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open() error
	// Close closes the database connection.
	Close() error
	// Migrate runs database migrations.
	Migrate() error

	// Repository accessors
	Projects() ProjectRepository
	Sessions() SessionRepository
}

// ProjectRepository defines operations for project rows.
type ProjectRepository interface {
	// Create inserts a project and returns the generated id.
	Create(ctx context.Context, project *models.Project) (int64, error)
	// GetByID returns the project, or nil when no row matches.
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// Update writes the full row and returns the number of rows affected.
	Update(ctx context.Context, project *models.Project) (int64, error)
	// Delete removes the project row; its sessions go with it via the
	// foreign-key cascade. Returns the number of rows affected.
	Delete(ctx context.Context, id int64) (int64, error)
	// List returns all projects ordered by lastUpdated descending.
	List(ctx context.Context) ([]*models.Project, error)
	// Touch refreshes the project's lastUpdated timestamp only.
	Touch(ctx context.Context, id int64, lastUpdated time.Time) error
}

// SessionRepository defines operations for practice session rows.
type SessionRepository interface {
	// Create inserts a session and returns the generated id.
	Create(ctx context.Context, session *models.PracticeSession) (int64, error)
	// ListByProject returns a project's sessions in insertion order.
	ListByProject(ctx context.Context, projectID int64) ([]*models.PracticeSession, error)
	// CountByProject returns the number of sessions for a project.
	CountByProject(ctx context.Context, projectID int64) (int64, error)
}
