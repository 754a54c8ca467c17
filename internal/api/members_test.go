package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/certipro/certipro-cli/testutil"
)

func TestAdminUsers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users" {
			t.Errorf("path = %s, want /admin/users", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"id":"u1","full_name":"Ada","email":"ada@certipro.test","role":"RoleEnum.MANAGER"},
			{"id":"u2","full_name":"Bob","email":"bob@certipro.test","role":"EMPLOYEE"}
		]`)
	}))

	users, err := client.AdminUsers(context.Background())
	if err != nil {
		t.Fatalf("AdminUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	if users[0].Role != "MANAGER" {
		t.Errorf("namespaced role = %q, want MANAGER", users[0].Role)
	}
	if users[1].Role != "EMPLOYEE" {
		t.Errorf("role = %q, want EMPLOYEE", users[1].Role)
	}
}

func TestOrganizationMembers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organization/members" {
			t.Errorf("path = %s, want /organization/members", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":"u1","full_name":"Ada","email":"ada@certipro.test","role":"MANAGER"}]`)
	}))

	members, err := client.OrganizationMembers(context.Background())
	if err != nil {
		t.Fatalf("OrganizationMembers() error = %v", err)
	}
	if len(members) != 1 || members[0].FullName != "Ada" {
		t.Errorf("members = %+v", members)
	}
}

func TestRemoveOrganizationMember(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/organization/members/remove" {
			t.Errorf("request = %s %s, want DELETE /organization/members/remove", r.Method, r.URL.Path)
		}
		testutil.DecodeBody(t, r, &body)
		fmt.Fprint(w, "{}")
	}))

	if err := client.RemoveOrganizationMember(context.Background(), "u1"); err != nil {
		t.Fatalf("RemoveOrganizationMember() error = %v", err)
	}
	if body["user_id"] != "u1" {
		t.Errorf("body = %v, want user_id u1", body)
	}
}

func TestInvitations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/organization/invitations" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":"i1","email":"new@certipro.test","role":"RoleEnum.EMPLOYEE","status":"pending"}]`)
	}))

	invitations, err := client.Invitations(context.Background())
	if err != nil {
		t.Fatalf("Invitations() error = %v", err)
	}
	if len(invitations) != 1 {
		t.Fatalf("invitations = %d, want 1", len(invitations))
	}
	if invitations[0].Role != "EMPLOYEE" {
		t.Errorf("role = %q, want normalized EMPLOYEE", invitations[0].Role)
	}
}

func TestSendInvitation(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/organization/invitations" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		testutil.DecodeBody(t, r, &body)
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.SendInvitation(context.Background(), "new@certipro.test", "employee"); err != nil {
		t.Fatalf("SendInvitation() error = %v", err)
	}
	if body["email"] != "new@certipro.test" || body["role"] != "employee" {
		t.Errorf("body = %v", body)
	}
}

func TestRevokeInvitation(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/organization/invitations/revoke" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		testutil.DecodeBody(t, r, &body)
		fmt.Fprint(w, "{}")
	}))

	if err := client.RevokeInvitation(context.Background(), "i1"); err != nil {
		t.Fatalf("RevokeInvitation() error = %v", err)
	}
	if body["id"] != "i1" {
		t.Errorf("body = %v, want id i1", body)
	}
}
