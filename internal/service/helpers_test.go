package service

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo/sqlite"
)

// setTempUserEnv points session files and the cache database at a temp dir.
func setTempUserEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	t.Setenv("CLIENT_DB_PATH", filepath.Join(dir, "db"))
}

func newTestCollections(t *testing.T) *Collections {
	t.Helper()
	setTempUserEnv(t)
	store, _, err := sqlite.OpenForUser("tester", zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("OpenForUser: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return OpenCollections(store)
}

// stubSession is a canned credential source.
type stubSession struct {
	token    string
	clientID string

	mu      sync.Mutex
	savedID string
}

func (s *stubSession) LoadToken() (string, error) {
	if s.token == "" {
		return "", errors.New("no token")
	}
	return s.token, nil
}

func (s *stubSession) LoadClientID() string { return s.clientID }

func (s *stubSession) SaveClientID(id string) error {
	s.mu.Lock()
	s.savedID = id
	s.mu.Unlock()
	return nil
}

func (s *stubSession) SavedClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedID
}

// memCheckpoints is an in-memory repo.CheckpointStore.
type memCheckpoints struct {
	mu    sync.Mutex
	saved map[model.Collection]time.Time
}

func newMemCheckpoints() *memCheckpoints {
	return &memCheckpoints{saved: make(map[model.Collection]time.Time)}
}

func (m *memCheckpoints) Load(_ context.Context, col model.Collection) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.saved[col]; ok {
		return t, nil
	}
	return time.Unix(0, 0).UTC(), nil
}

func (m *memCheckpoints) Save(_ context.Context, col model.Collection, at time.Time) error {
	m.mu.Lock()
	m.saved[col] = at
	m.mu.Unlock()
	return nil
}

// captureNotifier records notices for assertions.
type captureNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (c *captureNotifier) Success(msg string) {
	c.mu.Lock()
	c.successes = append(c.successes, msg)
	c.mu.Unlock()
}

func (c *captureNotifier) Warn(string) {}

func (c *captureNotifier) Error(msg string) {
	c.mu.Lock()
	c.errors = append(c.errors, msg)
	c.mu.Unlock()
}
