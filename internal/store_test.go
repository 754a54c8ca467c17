package internal

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreGetSet(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.Set("key", "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := store.Get("key"); err != nil || got != "first" {
		t.Errorf("Get() = %q, %v, want %q", got, err, "first")
	}

	// Overwrite, last write wins
	if err := store.Set("key", "second"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if got, _ := store.Get("key"); got != "second" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "second")
	}

	if err := store.Delete("key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get("key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete("key"); err != nil {
		t.Errorf("Delete() of missing key error = %v, want nil", err)
	}
}

func TestStoreToken(t *testing.T) {
	store := openTestStore(t)

	if got := store.Token(); got != "" {
		t.Errorf("Token() before login = %q, want empty", got)
	}

	if err := store.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if got := store.Token(); got != "abc123" {
		t.Errorf("Token() = %q, want %q", got, "abc123")
	}

	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken() error = %v", err)
	}
	if got := store.Token(); got != "" {
		t.Errorf("Token() after clear = %q, want empty", got)
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if session, err := store.LoadSession(); err != nil || session != nil {
		t.Errorf("LoadSession() on empty store = %v, %v, want nil, nil", session, err)
	}

	saved := &Session{
		SessionID: "session1",
		Messages: []Message{
			{Role: "user", Content: "Hello"},
			{Role: "assistant", Content: "Hi there"},
		},
	}
	if err := store.SaveSession(saved); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	loaded, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded.SessionID != "session1" {
		t.Errorf("loaded SessionID = %q, want %q", loaded.SessionID, "session1")
	}
	if len(loaded.Messages) != 2 || loaded.Messages[1].Content != "Hi there" {
		t.Errorf("loaded Messages = %+v, want 2 messages ending with %q", loaded.Messages, "Hi there")
	}

	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	if session, _ := store.LoadSession(); session != nil {
		t.Errorf("LoadSession() after clear = %+v, want nil", session)
	}
}

func TestStoreSessionIDWithoutMessages(t *testing.T) {
	store := openTestStore(t)

	// A bare session id still restores so history hydration can recover
	// the transcript.
	if err := store.SaveSession(&Session{SessionID: "session2"}); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	loaded, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded == nil || loaded.SessionID != "session2" {
		t.Errorf("LoadSession() = %+v, want session id %q", loaded, "session2")
	}
	if len(loaded.Messages) != 0 {
		t.Errorf("loaded Messages = %+v, want empty", loaded.Messages)
	}
}

func TestStoreCorruptSession(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set(keyChatSession, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.LoadSession(); err == nil {
		t.Error("LoadSession() with corrupt blob should return an error")
	}
}
