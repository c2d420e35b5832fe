// Package client implements the client data layer: a typed HTTP client for
// the API, an in-memory project store with search and undoable deletion,
// and the practice stopwatch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/good-yellow-bee/practicelog/internal/models"
)

// Project is the client-side view of a project, with tags parsed from the
// stored text into a list.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ChordsURL    string    `json:"chordsUrl"`
	RecordingURL string    `json:"recordingUrl"`
	Tags         []string  `json:"tags"`
	Notes        string    `json:"notes"`
	Capo         *int      `json:"capo"`
	Memorized    *bool     `json:"memorized"`
	Transpose    *int      `json:"transpose"`
	CreatedAt    time.Time `json:"createdAt"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// Client is a typed HTTP client for the practicelog API. Calls are not
// retried; a failed call returns the server's error string.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// normalize converts a server row to the client view. Malformed tag text is
// recovered as an empty list with a warning, never an error.
func normalize(m *models.Project) *Project {
	tags, err := models.DecodeTags(m.Tags)
	if err != nil {
		log.Printf("warning: project %d has malformed tags %q: %v", m.ID, m.Tags, err)
		tags = []string{}
	}
	return &Project{
		ID:           m.ID,
		Title:        m.Title,
		Artist:       m.Artist,
		ChordsURL:    m.ChordsURL,
		RecordingURL: m.RecordingURL,
		Tags:         tags,
		Notes:        m.Notes,
		Capo:         m.Capo,
		Memorized:    m.Memorized,
		Transpose:    m.Transpose,
		CreatedAt:    m.CreatedAt,
		LastUpdated:  m.LastUpdated,
	}
}

// ListProjects fetches all projects, parses tags, and drops rows with
// blank titles left behind by bad historical data.
func (c *Client) ListProjects(ctx context.Context) ([]*Project, error) {
	var rows []*models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &rows); err != nil {
		return nil, err
	}

	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Title) == "" {
			continue
		}
		projects = append(projects, normalize(row))
	}
	return projects, nil
}

// GetProject fetches one project with its practice sessions.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, []*models.PracticeSession, error) {
	var detail struct {
		models.Project
		PracticeSessions []*models.PracticeSession `json:"practiceSessions"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &detail); err != nil {
		return nil, nil, err
	}
	return normalize(&detail.Project), detail.PracticeSessions, nil
}

// CreateProject posts a new project with tags re-serialized and
// client-stamped timestamps, and fills in the server-assigned id.
func (c *Client) CreateProject(ctx context.Context, p *Project) error {
	tags, err := models.EncodeTags(p.Tags)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.LastUpdated = now

	payload := map[string]any{
		"title":        p.Title,
		"artist":       p.Artist,
		"chordsUrl":    p.ChordsURL,
		"recordingUrl": p.RecordingURL,
		"tags":         json.RawMessage(tags),
		"notes":        p.Notes,
		"capo":         p.Capo,
		"memorized":    p.Memorized,
		"transpose":    p.Transpose,
		"createdAt":    p.CreatedAt,
		"lastUpdated":  p.LastUpdated,
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/projects", payload, &resp); err != nil {
		return err
	}
	p.ID = resp.ID
	return nil
}

// UpdateProject sends the full project so the row reflects every field the
// client holds, and stamps a fresh lastUpdated.
func (c *Client) UpdateProject(ctx context.Context, p *Project) error {
	tags, err := models.EncodeTags(p.Tags)
	if err != nil {
		return err
	}

	p.LastUpdated = time.Now().UTC()

	payload := map[string]any{
		"title":        p.Title,
		"artist":       p.Artist,
		"chordsUrl":    p.ChordsURL,
		"recordingUrl": p.RecordingURL,
		"tags":         json.RawMessage(tags),
		"notes":        p.Notes,
		"capo":         p.Capo,
		"memorized":    p.Memorized,
		"transpose":    p.Transpose,
	}

	var resp struct {
		Updated int64 `json:"updated"`
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", p.ID), payload, &resp)
}

// DeleteProject removes a project and returns the count of rows removed.
func (c *Client) DeleteProject(ctx context.Context, id int64) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// LogSession records a practice session against a project and returns the
// generated session id.
func (c *Client) LogSession(ctx context.Context, projectID int64, duration time.Duration, start, end time.Time, label string) (int64, error) {
	payload := map[string]any{
		"duration":  duration.Milliseconds(),
		"startTime": start.UTC(),
		"endTime":   end.UTC(),
		"label":     label,
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	path := fmt.Sprintf("/api/projects/%d/practice-sessions", projectID)
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
