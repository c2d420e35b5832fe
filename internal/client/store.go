package client

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultUndoWindow is how long a deleted project stays recoverable before
// the delete is committed to the server.
const DefaultUndoWindow = 5 * time.Second

type pendingDelete struct {
	project *Project
	index   int
	timer   *time.Timer
}

// Store holds the client's working set of projects. Deletion is optimistic:
// the project leaves the list immediately, and the server call fires only
// after the undo window expires without an Undo.
type Store struct {
	mu         sync.Mutex
	client     *Client
	projects   []*Project
	pending    map[int64]*pendingDelete
	undoWindow time.Duration
}

// NewStore creates a store backed by the given API client.
func NewStore(c *Client) *Store {
	return &Store{
		client:     c,
		pending:    make(map[int64]*pendingDelete),
		undoWindow: DefaultUndoWindow,
	}
}

// SetUndoWindow overrides the undo window. Zero or negative commits
// deletes immediately.
func (s *Store) SetUndoWindow(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoWindow = d
}

// Refresh replaces the working set with the server's current projects.
func (s *Store) Refresh(ctx context.Context) error {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
	return nil
}

// Projects returns a snapshot of the working set.
func (s *Store) Projects() []*Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Filter returns projects whose title or artist contains the query,
// case-insensitively. An empty query returns everything.
func (s *Store) Filter(query string) []*Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]*Project, len(s.projects))
		copy(out, s.projects)
		return out
	}

	matched := make([]*Project, 0, len(s.projects))
	for _, p := range s.projects {
		haystack := strings.ToLower(p.Title + " " + p.Artist)
		if strings.Contains(haystack, query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Get returns the project with the given id from the working set.
func (s *Store) Get(id int64) (*Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Add creates the project on the server and prepends it to the working set.
func (s *Store) Add(ctx context.Context, p *Project) error {
	if err := s.client.CreateProject(ctx, p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]*Project{p}, s.projects...)
	return nil
}

// Update saves the project on the server and replaces it in the working set.
func (s *Store) Update(ctx context.Context, p *Project) error {
	if err := s.client.UpdateProject(ctx, p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.projects {
		if existing.ID == p.ID {
			s.projects[i] = p
			break
		}
	}
	return nil
}

// Delete removes the project from the working set immediately and schedules
// the server delete after the undo window. With a zero or negative window
// the server delete completes before Delete returns. A second Delete for
// the same id while one is pending commits the first immediately.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()

	if prev, ok := s.pending[id]; ok {
		prev.timer.Stop()
		delete(s.pending, id)
		s.mu.Unlock()
		s.commitDelete(id)
		s.mu.Lock()
	}

	idx := -1
	for i, p := range s.projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	removed := s.projects[idx]
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	if s.undoWindow <= 0 {
		s.mu.Unlock()
		s.commitDelete(id)
		return true
	}

	pd := &pendingDelete{project: removed, index: idx}
	pd.timer = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		if s.pending[id] != pd {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()
		s.commitDelete(id)
	})
	s.pending[id] = pd
	s.mu.Unlock()
	return true
}

// Undo cancels a pending delete and reinserts the project at its original
// position. It reports whether there was anything to undo.
func (s *Store) Undo(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pd, ok := s.pending[id]
	if !ok {
		return false
	}
	if !pd.timer.Stop() {
		// Timer already fired; the commit won.
		return false
	}
	delete(s.pending, id)

	idx := pd.index
	if idx > len(s.projects) {
		idx = len(s.projects)
	}
	s.projects = append(s.projects, nil)
	copy(s.projects[idx+1:], s.projects[idx:])
	s.projects[idx] = pd.project
	return true
}

// Flush commits every pending delete immediately. Callers use it on
// shutdown so no scheduled delete is lost.
func (s *Store) Flush() {
	s.mu.Lock()
	ids := make([]int64, 0, len(s.pending))
	for id, pd := range s.pending {
		if pd.timer.Stop() {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s.commitDelete(id)
	}
}

// commitDelete performs the server delete. Failures are logged, not
// surfaced; the project is already gone from the working set.
func (s *Store) commitDelete(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.client.DeleteProject(ctx, id); err != nil {
		log.Printf("delete project %d failed: %v", id, err)
	}
}
