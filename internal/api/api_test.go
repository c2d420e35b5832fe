package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/good-yellow-bee/practicelog/internal/models"
	"github.com/good-yellow-bee/practicelog/internal/storage"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "practicelog-api-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}

	store := storage.NewSQLiteStorage(filepath.Join(tmpDir, "test.db"))
	if err := store.Open(); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("open database: %v", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		os.RemoveAll(tmpDir)
		t.Fatalf("migrate database: %v", err)
	}

	s, err := New(&Config{Address: ":0"}, store)
	if err != nil {
		t.Fatalf("create server: %v", err)
	}

	ts := httptest.NewServer(s.setupRouter())
	t.Cleanup(func() {
		ts.Close()
		store.Close()
		os.RemoveAll(tmpDir)
	})
	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode POST %s response: %v", url, err)
	}
	return resp, out
}

// Walks the documented end-to-end flow: create a project, list it, log a
// practice session, observe the timestamp bump, then delete and verify the
// cascade.
func TestAPI_ProjectLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	// Create
	resp, body := postJSON(t, ts.URL+"/api/projects",
		`{"title":"Etude","artist":"Czerny","tags":["technique"]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var id int64
	if err := json.Unmarshal(body["id"], &id); err != nil || id <= 0 {
		t.Fatalf("id = %s, want positive integer", body["id"])
	}

	// List
	listResp, err := http.Get(ts.URL + "/api/projects")
	if err != nil {
		t.Fatalf("GET projects: %v", err)
	}
	var projects []*models.Project
	if err := json.NewDecoder(listResp.Body).Decode(&projects); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	listResp.Body.Close()
	if len(projects) != 1 || projects[0].ID != id {
		t.Fatalf("list = %+v, want the created project", projects)
	}
	if projects[0].Tags != `["technique"]` {
		t.Errorf("tags = %q, want serialized text as stored", projects[0].Tags)
	}
	createdAt := projects[0].CreatedAt

	// Timestamps have millisecond precision
	time.Sleep(5 * time.Millisecond)

	// Log a session
	resp, body = postJSON(t, ts.URL+"/api/projects/1/practice-sessions",
		`{"duration":60000,"startTime":"2024-03-01T10:00:00.000Z","endTime":"2024-03-01T10:01:00.000Z"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("session status = %d", resp.StatusCode)
	}
	var sessionID int64
	if err := json.Unmarshal(body["id"], &sessionID); err != nil || sessionID <= 0 {
		t.Fatalf("session id = %s, want positive integer", body["id"])
	}

	// Detail shows the session and the bumped timestamp
	detailResp, err := http.Get(ts.URL + "/api/projects/1")
	if err != nil {
		t.Fatalf("GET project: %v", err)
	}
	var detail struct {
		models.Project
		PracticeSessions []*models.PracticeSession `json:"practiceSessions"`
	}
	if err := json.NewDecoder(detailResp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	detailResp.Body.Close()
	if len(detail.PracticeSessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(detail.PracticeSessions))
	}
	if !detail.LastUpdated.After(createdAt) {
		t.Error("logging a session should move lastUpdated past createdAt")
	}

	// Partial update leaves the artist alone
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/projects/1",
		bytes.NewReader([]byte(`{"notes":"hands separately first"}`)))
	req.Header.Set("Content-Type", "application/json")
	updResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT project: %v", err)
	}
	var upd map[string]int64
	json.NewDecoder(updResp.Body).Decode(&upd)
	updResp.Body.Close()
	if upd["updated"] != 1 {
		t.Errorf("updated = %d, want 1", upd["updated"])
	}

	// Delete cascades
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/projects/1", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE project: %v", err)
	}
	var del map[string]int64
	json.NewDecoder(delResp.Body).Decode(&del)
	delResp.Body.Close()
	if del["deleted"] != 1 {
		t.Errorf("deleted = %d, want 1", del["deleted"])
	}

	getResp, err := http.Get(ts.URL + "/api/projects/1")
	if err != nil {
		t.Fatalf("GET deleted project: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d after delete", getResp.StatusCode, http.StatusNotFound)
	}
}

func TestAPI_Health(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestNew_RequiresStorage(t *testing.T) {
	if _, err := New(&Config{}, nil); err == nil {
		t.Error("expected error for nil storage")
	}
	if _, err := New(nil, &storage.SQLiteStorage{}); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	if cfg.Address != ":3001" {
		t.Errorf("address = %q, want ':3001'", cfg.Address)
	}
}
