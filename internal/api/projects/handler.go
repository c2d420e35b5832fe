// Package projects implements the /api/projects handlers.
package projects

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/practicelog/internal/metrics"
	"github.com/good-yellow-bee/practicelog/internal/models"
	"github.com/good-yellow-bee/practicelog/internal/storage"
)

// Fixed error strings existing clients match on.
const (
	errFetchProjects   = "Failed to fetch projects"
	errFetchProject    = "Failed to fetch project"
	errCreateProject   = "Failed to create project"
	errUpdateProject   = "Failed to update project"
	errDeleteProject   = "Failed to delete project"
	errSaveSession     = "Failed to save session"
	errUpdateTimestamp = "Failed to update timestamp"
	errProjectNotFound = "Project not found"
)

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}

func jsonCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(data)
}

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// Request types
type CreateRequest struct {
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ChordsURL    string    `json:"chordsUrl"`
	RecordingURL string    `json:"recordingUrl"`
	Tags         TagsField `json:"tags"`
	Notes        string    `json:"notes"`
	Capo         *int      `json:"capo"`
	Memorized    *bool     `json:"memorized"`
	Transpose    *int      `json:"transpose"`
	CreatedAt    string    `json:"createdAt"`
	LastUpdated  string    `json:"lastUpdated"`
}

type UpdateRequest struct {
	Title        *string   `json:"title"`
	Artist       *string   `json:"artist"`
	ChordsURL    *string   `json:"chordsUrl"`
	RecordingURL *string   `json:"recordingUrl"`
	Tags         TagsField `json:"tags"`
	Notes        *string   `json:"notes"`
	Capo         *int      `json:"capo"`
	Memorized    *bool     `json:"memorized"`
	Transpose    *int      `json:"transpose"`
}

type SessionRequest struct {
	Duration  *int64 `json:"duration"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	CreatedAt string `json:"createdAt"`
}

// DetailResponse is a project with its practice sessions nested.
type DetailResponse struct {
	*models.Project
	PracticeSessions []*models.PracticeSession `json:"practiceSessions"`
}

// List returns all projects ordered by lastUpdated descending. Tags are
// returned as stored; clients parse the serialized text.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.storage.Projects().List(r.Context())
	if err != nil {
		log.Printf("list projects error: %v", err)
		jsonError(w, http.StatusInternalServerError, errFetchProjects)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	jsonOK(w, projects)
}

// Create inserts a project and returns the generated id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ValidateTitle(req.Title); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	project := models.NewProject(strings.TrimSpace(req.Title), req.Artist)
	project.ChordsURL = req.ChordsURL
	project.RecordingURL = req.RecordingURL
	project.Notes = req.Notes
	project.Capo = req.Capo
	project.Memorized = req.Memorized
	project.Transpose = req.Transpose
	if req.Tags.Set {
		project.Tags = req.Tags.Text
	}

	// Clients may stamp their own timestamps; the server stamps the
	// current time otherwise.
	if t, err := time.Parse(time.RFC3339, req.CreatedAt); err == nil {
		project.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, req.LastUpdated); err == nil {
		project.LastUpdated = t
	}

	id, err := h.storage.Projects().Create(r.Context(), project)
	if err != nil {
		log.Printf("create project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCreateProject)
		return
	}

	metrics.ProjectsCreated.Inc()
	log.Printf("project created: %s (id=%d)", project.Title, id)
	jsonCreated(w, map[string]int64{"id": id})
}

// GetByID returns a project with its practice sessions.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	project, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("get project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errFetchProject)
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errProjectNotFound)
		return
	}

	sessions, err := h.storage.Sessions().ListByProject(ctx, id)
	if err != nil {
		log.Printf("get project sessions error: %v", err)
		jsonError(w, http.StatusInternalServerError, errFetchProject)
		return
	}
	if sessions == nil {
		sessions = []*models.PracticeSession{}
	}

	jsonOK(w, &DetailResponse{Project: project, PracticeSessions: sessions})
}

// Update applies a partial update: only fields present in the request
// change the row, and lastUpdated is always refreshed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	project, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("update project error: get: %v", err)
		jsonError(w, http.StatusInternalServerError, errUpdateProject)
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errProjectNotFound)
		return
	}

	if req.Title != nil {
		if err := ValidateTitle(*req.Title); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}

	update := models.ProjectUpdate{
		Title:        req.Title,
		Artist:       req.Artist,
		ChordsURL:    req.ChordsURL,
		RecordingURL: req.RecordingURL,
		Notes:        req.Notes,
		Capo:         req.Capo,
		Memorized:    req.Memorized,
		Transpose:    req.Transpose,
	}
	if req.Tags.Set {
		update.Tags = &req.Tags.Text
	}
	project.Merge(update)

	rows, err := h.storage.Projects().Update(ctx, project)
	if err != nil {
		log.Printf("update project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errUpdateProject)
		return
	}

	log.Printf("project updated: %s (id=%d)", project.Title, id)
	jsonOK(w, map[string]int64{"updated": rows})
}

// Delete removes a project; the store cascade removes its sessions.
// The response carries the count of rows removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	rows, err := h.storage.Projects().Delete(r.Context(), id)
	if err != nil {
		log.Printf("delete project error: %v", err)
		jsonError(w, http.StatusInternalServerError, errDeleteProject)
		return
	}

	if rows > 0 {
		metrics.ProjectsDeleted.Inc()
		log.Printf("project deleted: id=%d", id)
	}
	jsonOK(w, map[string]int64{"deleted": rows})
}

// CreateSession appends a practice session to a project and bumps the
// parent's lastUpdated. The two writes fail with distinct error bodies so
// a client can tell a lost session from a stale timestamp.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Duration == nil {
		jsonError(w, http.StatusBadRequest, "duration is required")
		return
	}
	if *req.Duration < 0 {
		jsonError(w, http.StatusBadRequest, "duration must be non-negative")
		return
	}

	startTime, err := parseOptionalTime(req.StartTime)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid startTime")
		return
	}
	endTime, err := parseOptionalTime(req.EndTime)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid endTime")
		return
	}

	ctx := r.Context()
	project, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("create session error: get project: %v", err)
		jsonError(w, http.StatusInternalServerError, errSaveSession)
		return
	}
	if project == nil {
		jsonError(w, http.StatusNotFound, errProjectNotFound)
		return
	}

	now := time.Now().UTC()
	session := &models.PracticeSession{
		ProjectID: id,
		Duration:  *req.Duration,
		StartTime: startTime,
		EndTime:   endTime,
		Label:     req.Label,
		CreatedAt: now,
	}
	if t, err := time.Parse(time.RFC3339, req.CreatedAt); err == nil {
		session.CreatedAt = t
	}

	sessionID, err := h.storage.Sessions().Create(ctx, session)
	if err != nil {
		log.Printf("create session error: %v", err)
		jsonError(w, http.StatusInternalServerError, errSaveSession)
		return
	}

	project.Touch()
	if err := h.storage.Projects().Touch(ctx, id, project.LastUpdated); err != nil {
		log.Printf("create session error: touch project: %v", err)
		jsonError(w, http.StatusInternalServerError, errUpdateTimestamp)
		return
	}

	metrics.SessionsRecorded.Inc()
	log.Printf("session recorded: project=%d duration=%dms", id, session.Duration)
	jsonCreated(w, map[string]int64{"id": sessionID})
}

// projectID extracts and validates the {id} route parameter, writing the
// error response itself when the id is unusable.
func projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		jsonError(w, http.StatusBadRequest, "invalid project id")
		return 0, false
	}
	return id, true
}

func parseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
