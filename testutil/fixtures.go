package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStateFixture creates a state database fixture with a stored token
// and a persisted chat session
func CreateStateFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS clientState (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	sessionData := map[string]interface{}{
		"session_id": "session1",
		"messages": []map[string]string{
			{"role": "user", "content": "Hello"},
			{"role": "assistant", "content": "Hi there"},
		},
	}
	sessionJSON, _ := json.Marshal(sessionData)

	insertSQL := "INSERT INTO clientState (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, "accessToken", "fixture-token"); err != nil {
		t.Fatalf("Failed to insert token: %v", err)
	}
	if _, err := db.Exec(insertSQL, "chatSession", string(sessionJSON)); err != nil {
		t.Fatalf("Failed to insert session: %v", err)
	}
}

// CreateConfigFixture writes a config file fixture
func CreateConfigFixture(t *testing.T, configPath string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}
