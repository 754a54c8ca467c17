package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRequestsCommandArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"approve without id", []string{"requests", "approve"}},
		{"reject without id", []string{"requests", "reject"}},
		{"approve with too many ids", []string{"requests", "approve", "r1", "r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			if err := rootCmd.Execute(); err == nil {
				t.Errorf("Execute(%v) should fail argument validation", tt.args)
			}
		})
	}
}

func TestRequestsCommandRequiresLogin(t *testing.T) {
	// An empty state store means no token, so the guard rejects the
	// command before any network call.
	dbPath := filepath.Join(t.TempDir(), "state.db")

	rootCmd.SetArgs([]string{"requests", "list", "--state", dbPath})
	var stderr bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)

	if err := rootCmd.Execute(); err == nil {
		t.Error("requests list without a token should fail")
	}
}

func TestUsersCommandRequiresLogin(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	rootCmd.SetArgs([]string{"users", "list", "--state", dbPath})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("users list without a token should fail")
	}
}
