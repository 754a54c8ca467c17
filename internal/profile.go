package internal

import (
	"context"
)

// ProfileService resolves the stored bearer token into a user profile.
// Implemented by the API client.
type ProfileService interface {
	Profile(ctx context.Context) (*UserProfile, error)
}

// ResolveProfile resolves the current user, once per invocation. Without a
// stored token it returns nil immediately, no network call. A failed profile
// fetch clears the stored token and downgrades to an unauthenticated view;
// the failure is logged, not returned.
func ResolveProfile(ctx context.Context, store *Store, svc ProfileService) *UserProfile {
	if store.Token() == "" {
		return nil
	}

	profile, err := svc.Profile(ctx)
	if err != nil {
		LogWarn("Profile fetch failed, clearing stored token: %v", err)
		if err := store.ClearToken(); err != nil {
			LogWarn("Failed to clear token: %v", err)
		}
		return nil
	}
	return profile
}

// RoleAll is the sentinel that bypasses role checks for a route
const RoleAll = "ALL"

// routeAccess maps protected routes to the roles allowed to view them
var routeAccess = map[string][]string{
	"/dashboard":                   {RoleAll},
	"/standards":                   {RoleAll},
	"/chat":                        {RoleAll},
	"/users":                       {RoleAdmin, RoleManager, RoleEmployee},
	"/organization/users":          {RoleManager, RoleEmployee},
	"/organization/audits":         {RoleManager, RoleEmployee},
	"/organization/certifications": {RoleManager, RoleEmployee},
	"/organization/invitations":    {RoleManager},
}

// AccessDecision is the outcome of a route guard check. When Allowed is
// false, Redirect carries the fallback path and From the originally
// requested one, preserved for a potential post-login redirect.
type AccessDecision struct {
	Allowed  bool
	Redirect string
	From     string
}

// CheckAccess applies the route guard: an absent profile redirects to
// /login; a role outside the allowed set redirects to the root path.
// Routes without an entry in the table are public.
func CheckAccess(profile *UserProfile, route string) AccessDecision {
	allowed, protected := routeAccess[route]
	if !protected {
		return AccessDecision{Allowed: true}
	}

	if profile == nil {
		return AccessDecision{Redirect: "/login", From: route}
	}

	for _, role := range allowed {
		if role == RoleAll || role == profile.Role {
			return AccessDecision{Allowed: true}
		}
	}
	return AccessDecision{Redirect: "/", From: route}
}
