package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStore(New(srv.URL, nil))
}

func seedStore(s *Store, projects ...*Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
}

func TestStore_Filter(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})
	seedStore(s,
		&Project{ID: 1, Title: "Blackbird", Artist: "The Beatles"},
		&Project{ID: 2, Title: "Yesterday", Artist: "The Beatles"},
		&Project{ID: 3, Title: "Classical Gas", Artist: "Mason Williams"},
	)

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"beatles", []int64{1, 2}},
		{"BLACK", []int64{1}},
		{"mason", []int64{3}},
		{"zeppelin", nil},
		{"  yesterday  ", []int64{2}},
	}
	for _, tt := range tests {
		got := s.Filter(tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q): expected %d results, got %d", tt.query, len(tt.want), len(got))
			continue
		}
		for i, p := range got {
			if p.ID != tt.want[i] {
				t.Errorf("Filter(%q)[%d]: expected id %d, got %d", tt.query, i, tt.want[i], p.ID)
			}
		}
	}
}

func TestStore_DeleteAndUndo(t *testing.T) {
	var deletes atomic.Int64
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		w.Write([]byte(`{"deleted":1}`))
	})
	s.SetUndoWindow(time.Hour)
	seedStore(s,
		&Project{ID: 1, Title: "First"},
		&Project{ID: 2, Title: "Second"},
		&Project{ID: 3, Title: "Third"},
	)

	if !s.Delete(2) {
		t.Fatal("Delete returned false for existing project")
	}
	if got := s.Projects(); len(got) != 2 {
		t.Fatalf("expected 2 projects after delete, got %d", len(got))
	}
	if deletes.Load() != 0 {
		t.Error("server delete fired before undo window expired")
	}

	if !s.Undo(2) {
		t.Fatal("Undo returned false for pending delete")
	}
	got := s.Projects()
	if len(got) != 3 {
		t.Fatalf("expected 3 projects after undo, got %d", len(got))
	}
	if got[1].ID != 2 {
		t.Errorf("expected project restored at original index 1, got id %d", got[1].ID)
	}
	if s.Undo(2) {
		t.Error("second Undo should return false")
	}
}

func TestStore_DeleteCommitsAfterWindow(t *testing.T) {
	done := make(chan struct{})
	var once sync.Once
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			once.Do(func() { close(done) })
		}
		w.Write([]byte(`{"deleted":1}`))
	})
	s.SetUndoWindow(20 * time.Millisecond)
	seedStore(s, &Project{ID: 5, Title: "Goner"})

	if !s.Delete(5) {
		t.Fatal("Delete returned false")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server delete never fired after undo window")
	}
	if s.Undo(5) {
		t.Error("Undo should fail after the delete committed")
	}
}

func TestStore_DeleteImmediate_CommitsBeforeReturn(t *testing.T) {
	var deletes atomic.Int64
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			time.Sleep(50 * time.Millisecond)
			deletes.Add(1)
		}
		w.Write([]byte(`{"deleted":1}`))
	})
	s.SetUndoWindow(0)
	seedStore(s, &Project{ID: 1, Title: "Goner"})

	if !s.Delete(1) {
		t.Fatal("Delete returned false")
	}
	if got := deletes.Load(); got != 1 {
		t.Fatalf("expected server delete committed before Delete returned, got %d", got)
	}
}

func TestStore_RepeatDelete_CommitsFirstBeforeReturn(t *testing.T) {
	var deletes atomic.Int64
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			time.Sleep(50 * time.Millisecond)
			deletes.Add(1)
		}
		w.Write([]byte(`{"deleted":1}`))
	})
	s.SetUndoWindow(time.Hour)
	seedStore(s, &Project{ID: 1, Title: "Goner"})

	s.Delete(1)
	if deletes.Load() != 0 {
		t.Fatal("first delete should still be pending")
	}

	s.Delete(1)
	if got := deletes.Load(); got != 1 {
		t.Fatalf("expected superseded delete committed before second Delete returned, got %d", got)
	}
	if s.Undo(1) {
		t.Error("Undo should fail once the pending delete was committed")
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})
	if s.Delete(99) {
		t.Error("Delete should return false for unknown id")
	}
}

func TestStore_Flush(t *testing.T) {
	var deletes atomic.Int64
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		w.Write([]byte(`{"deleted":1}`))
	})
	s.SetUndoWindow(time.Hour)
	seedStore(s, &Project{ID: 1}, &Project{ID: 2})

	s.Delete(1)
	s.Delete(2)
	s.Flush()

	if got := deletes.Load(); got != 2 {
		t.Errorf("expected 2 committed deletes after Flush, got %d", got)
	}
	if s.Undo(1) || s.Undo(2) {
		t.Error("Undo should fail after Flush")
	}
}

func TestStore_AddPrepends(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":10}`))
	})
	seedStore(s, &Project{ID: 1, Title: "Old"})

	p := &Project{Title: "New", Artist: "Someone"}
	if err := s.Add(context.Background(), p); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got := s.Projects()
	if len(got) != 2 || got[0].ID != 10 {
		t.Errorf("expected new project first, got %+v", got)
	}
}

func TestStore_Refresh(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Only","artist":"One","tags":"[]"}]`))
	})
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if got := s.Projects(); len(got) != 1 || got[0].Title != "Only" {
		t.Errorf("unexpected working set: %+v", got)
	}
}
