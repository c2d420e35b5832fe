package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/good-yellow-bee/practicelog/internal/models"
)

type sqliteSessionRepo struct {
	db *sql.DB
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.PracticeSession) (int64, error) {
	query := `
		INSERT INTO practice_sessions (projectId, duration, startTime, endTime, label, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		session.ProjectID, session.Duration,
		formatTime(session.StartTime), formatTime(session.EndTime),
		session.Label, formatTime(session.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert session id: %w", err)
	}
	session.ID = id
	return id, nil
}

func (r *sqliteSessionRepo) ListByProject(ctx context.Context, projectID int64) ([]*models.PracticeSession, error) {
	query := `
		SELECT id, projectId, duration, startTime, endTime, label, createdAt
		FROM practice_sessions WHERE projectId = ? ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.PracticeSession
	for rows.Next() {
		session := &models.PracticeSession{}
		var startTime, endTime, label, createdAt sql.NullString
		err := rows.Scan(
			&session.ID, &session.ProjectID, &session.Duration,
			&startTime, &endTime, &label, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.StartTime = parseTime(startTime.String)
		session.EndTime = parseTime(endTime.String)
		session.Label = label.String
		session.CreatedAt = parseTime(createdAt.String)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sqliteSessionRepo) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM practice_sessions WHERE projectId = ?", projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}
