package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/good-yellow-bee/practicelog/internal/models"
)

type sqliteProjectRepo struct {
	db *sql.DB
}

// timeLayout is the stored timestamp format: RFC 3339 UTC with fixed
// millisecond precision, byte-identical to the ISO strings in pre-existing
// data files. The fixed width keeps ORDER BY on the text column
// chronological.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime tolerates malformed historical values by returning the zero
// time instead of failing the whole row.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r *sqliteProjectRepo) Create(ctx context.Context, project *models.Project) (int64, error) {
	query := `
		INSERT INTO projects (title, artist, chordsUrl, recordingUrl, tags, notes, capo, memorized, transpose, createdAt, lastUpdated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Title, project.Artist, project.ChordsURL, project.RecordingURL,
		project.Tags, project.Notes, project.Capo, boolPtrToInt(project.Memorized),
		project.Transpose, formatTime(project.CreatedAt), formatTime(project.LastUpdated),
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert project id: %w", err)
	}
	project.ID = id
	return id, nil
}

func (r *sqliteProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `
		SELECT id, title, artist, chordsUrl, recordingUrl, tags, notes, capo, memorized, transpose, createdAt, lastUpdated
		FROM projects WHERE id = ?
	`
	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

func (r *sqliteProjectRepo) Update(ctx context.Context, project *models.Project) (int64, error) {
	query := `
		UPDATE projects
		SET title = ?, artist = ?, chordsUrl = ?, recordingUrl = ?, tags = ?, notes = ?, capo = ?, memorized = ?, transpose = ?, lastUpdated = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Title, project.Artist, project.ChordsURL, project.RecordingURL,
		project.Tags, project.Notes, project.Capo, boolPtrToInt(project.Memorized),
		project.Transpose, formatTime(project.LastUpdated),
		project.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update project rows: %w", err)
	}
	return rows, nil
}

func (r *sqliteProjectRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete project rows: %w", err)
	}
	return rows, nil
}

func (r *sqliteProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, title, artist, chordsUrl, recordingUrl, tags, notes, capo, memorized, transpose, createdAt, lastUpdated
		FROM projects ORDER BY lastUpdated DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *sqliteProjectRepo) Touch(ctx context.Context, id int64, lastUpdated time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET lastUpdated = ? WHERE id = ?", formatTime(lastUpdated), id)
	if err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project not found: %d", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*models.Project, error) {
	project := &models.Project{}
	var artist, chordsURL, recordingURL, tags, notes, createdAt, lastUpdated sql.NullString
	var capo, memorized, transpose sql.NullInt64

	err := row.Scan(
		&project.ID, &project.Title, &artist, &chordsURL, &recordingURL,
		&tags, &notes, &capo, &memorized, &transpose, &createdAt, &lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	project.Artist = artist.String
	project.ChordsURL = chordsURL.String
	project.RecordingURL = recordingURL.String
	project.Tags = tags.String
	project.Notes = notes.String
	if capo.Valid {
		v := int(capo.Int64)
		project.Capo = &v
	}
	if memorized.Valid {
		v := memorized.Int64 != 0
		project.Memorized = &v
	}
	if transpose.Valid {
		v := int(transpose.Int64)
		project.Transpose = &v
	}
	project.CreatedAt = parseTime(createdAt.String)
	project.LastUpdated = parseTime(lastUpdated.String)

	return project, nil
}

// boolPtrToInt maps the memorized tri-state onto the INTEGER column:
// nil stays NULL, false is 0, true is 1.
func boolPtrToInt(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}
