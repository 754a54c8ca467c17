package internal

import (
	"context"
	"errors"
	"testing"
)

type fakeProfileService struct {
	profile *UserProfile
	err     error
	calls   int
}

func (f *fakeProfileService) Profile(ctx context.Context) (*UserProfile, error) {
	f.calls++
	return f.profile, f.err
}

func TestResolveProfileWithoutToken(t *testing.T) {
	store := openTestStore(t)
	svc := &fakeProfileService{profile: &UserProfile{Role: RoleAdmin}}

	if got := ResolveProfile(context.Background(), store, svc); got != nil {
		t.Errorf("ResolveProfile() without token = %+v, want nil", got)
	}
	if svc.calls != 0 {
		t.Errorf("Profile() calls = %d, want 0 without a stored token", svc.calls)
	}
}

func TestResolveProfileSuccess(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	svc := &fakeProfileService{profile: &UserProfile{Role: RoleManager, Name: "Dana"}}

	got := ResolveProfile(context.Background(), store, svc)
	if got == nil || got.Role != RoleManager || got.Name != "Dana" {
		t.Errorf("ResolveProfile() = %+v, want manager Dana", got)
	}
	if svc.calls != 1 {
		t.Errorf("Profile() calls = %d, want 1", svc.calls)
	}
}

func TestResolveProfileFailureClearsToken(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetToken("expired"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	svc := &fakeProfileService{err: errors.New("401")}

	if got := ResolveProfile(context.Background(), store, svc); got != nil {
		t.Errorf("ResolveProfile() on fetch failure = %+v, want nil", got)
	}
	if store.Token() != "" {
		t.Error("a failed profile fetch should clear the stored token")
	}
}

func TestCheckAccess(t *testing.T) {
	admin := &UserProfile{Role: RoleAdmin}
	manager := &UserProfile{Role: RoleManager}
	employee := &UserProfile{Role: RoleEmployee}
	guest := &UserProfile{Role: RoleGuest}

	tests := []struct {
		name         string
		profile      *UserProfile
		route        string
		wantAllowed  bool
		wantRedirect string
	}{
		{"public route without entry", nil, "/about", true, ""},
		{"dashboard requires login", nil, "/dashboard", false, "/login"},
		{"dashboard open to any role", guest, "/dashboard", true, ""},
		{"chat open to any role", employee, "/chat", true, ""},
		{"users open to admin", admin, "/users", true, ""},
		{"users open to manager", manager, "/users", true, ""},
		{"users closed to guest", guest, "/users", false, "/"},
		{"org users closed to admin", admin, "/organization/users", false, "/"},
		{"org users open to employee", employee, "/organization/users", true, ""},
		{"invitations manager only", employee, "/organization/invitations", false, "/"},
		{"invitations open to manager", manager, "/organization/invitations", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAccess(tt.profile, tt.route)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("CheckAccess(%q).Allowed = %v, want %v", tt.route, got.Allowed, tt.wantAllowed)
			}
			if got.Redirect != tt.wantRedirect {
				t.Errorf("CheckAccess(%q).Redirect = %q, want %q", tt.route, got.Redirect, tt.wantRedirect)
			}
		})
	}
}

func TestCheckAccessPreservesFrom(t *testing.T) {
	got := CheckAccess(nil, "/organization/audits")
	if got.From != "/organization/audits" {
		t.Errorf("From = %q, want the originally requested route", got.From)
	}
}
