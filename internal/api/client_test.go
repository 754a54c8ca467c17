package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/certipro/certipro-cli/testutil"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := testutil.NewBackend(t, handler)
	return NewClient(srv.URL, 5*time.Second, func() string { return "test-token" })
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, "{}")
	}))

	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := testutil.NewBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"access_token":"abc"}`)
	}))
	client := NewClient(srv.URL, 5*time.Second, nil)

	if _, err := client.Login(context.Background(), "a@b.test", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none when logged out", gotAuth)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantUnauth bool
	}{
		{"error field", http.StatusBadRequest, `{"error":"bad input"}`, "bad input", false},
		{"message field", http.StatusConflict, `{"message":"already exists"}`, "already exists", false},
		{"unauthorized", http.StatusUnauthorized, `{"error":"token expired"}`, "token expired", true},
		{"forbidden", http.StatusForbidden, `{}`, "", true},
		{"non-json body", http.StatusInternalServerError, "boom", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			_, err := client.Profile(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if IsUnauthorized(err) != tt.wantUnauth {
				t.Errorf("IsUnauthorized() = %v, want %v", IsUnauthorized(err), tt.wantUnauth)
			}
		})
	}
}

func TestIsUnauthorizedOtherErrors(t *testing.T) {
	if IsUnauthorized(errors.New("plain")) {
		t.Error("IsUnauthorized should be false for non-api errors")
	}
	if IsUnauthorized(nil) {
		t.Error("IsUnauthorized should be false for nil")
	}
}
