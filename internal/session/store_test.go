package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Team-SMDRS/customer-dashboard/internal/session"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session", "token")
}

func TestStore_SetAndGet(t *testing.T) {
	s := session.NewStore(storePath(t), zap.NewNop())

	if _, ok := s.Get(); ok {
		t.Fatal("expected empty store")
	}

	if err := s.Set("tok-abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tok, ok := s.Get()
	if !ok || tok != "tok-abc" {
		t.Errorf("expected 'tok-abc', got %q (ok=%v)", tok, ok)
	}
}

func TestStore_SurvivesRestart(t *testing.T) {
	path := storePath(t)

	s := session.NewStore(path, zap.NewNop())
	if err := s.Set("tok-persist"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh store over the same file sees the credential.
	s2 := session.NewStore(path, zap.NewNop())
	tok, ok := s2.Get()
	if !ok || tok != "tok-persist" {
		t.Errorf("expected persisted token, got %q (ok=%v)", tok, ok)
	}
}

func TestStore_Clear(t *testing.T) {
	path := storePath(t)

	s := session.NewStore(path, zap.NewNop())
	if err := s.Set("tok-gone"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, ok := s.Get(); ok {
		t.Fatal("expected cleared store")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected credential file removed, stat err = %v", err)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := session.NewStore(storePath(t), zap.NewNop())
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
}
