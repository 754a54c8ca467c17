package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// OrganizationRequestPayload is the create-request body for organizations
type OrganizationRequestPayload struct {
	OrganizationName string `json:"organization_name"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
}

// CertificationBodyRequestPayload is the create-request body for
// certification bodies. Organization fields are absent by construction.
type CertificationBodyRequestPayload struct {
	CertificationBodyName string `json:"certification_body_name"`
	Address               string `json:"address"`
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
}

// RequestService is the backend surface the workflow depends on.
// Implemented by the API client.
type RequestService interface {
	OrganizationRequests(ctx context.Context, name string) ([]Request, error)
	CertificationBodyRequests(ctx context.Context, name string) ([]Request, error)
	CreateOrganizationRequest(ctx context.Context, payload OrganizationRequestPayload) error
	CreateCertificationBodyRequest(ctx context.Context, payload CertificationBodyRequestPayload) error
	ReviewRequest(ctx context.Context, typ RequestType, action, id, comment string) error
}

// ErrNoSelection is returned when Confirm runs without a selected action
var ErrNoSelection = errors.New("no request selected")

// ErrRequestNotFound is returned when the selected id is not in the list
var ErrRequestNotFound = errors.New("request not found")

// Workflow aggregates, filters and mutates the two approval pipelines for
// one viewer. A failed refresh keeps the previously fetched list.
type Workflow struct {
	svc        RequestService
	profile    *UserProfile
	requests   []Request
	processing *ProcessingRequest
}

// NewWorkflow creates a workflow for the given viewer profile
func NewWorkflow(svc RequestService, profile *UserProfile) *Workflow {
	return &Workflow{svc: svc, profile: profile}
}

// Requests returns the current list
func (w *Workflow) Requests() []Request {
	return w.requests
}

// Refresh fetches the request lists appropriate for the viewer role.
// Guests have no list view, so their refresh is a no-op.
func (w *Workflow) Refresh(ctx context.Context) error {
	if w.profile == nil || w.profile.IsGuest() {
		return nil
	}
	if w.profile.IsAdmin() {
		return w.refreshAdmin(ctx)
	}
	return w.refreshScoped(ctx)
}

// refreshAdmin fetches both pipelines concurrently and merges them. Either
// call failing aborts the merge: no partial overwrite of the previous list.
func (w *Workflow) refreshAdmin(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		orgReqs  []Request
		cbReqs   []Request
		orgErr   error
		cbErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		orgReqs, orgErr = w.svc.OrganizationRequests(ctx, "")
	}()
	go func() {
		defer wg.Done()
		cbReqs, cbErr = w.svc.CertificationBodyRequests(ctx, "")
	}()
	wg.Wait()

	if orgErr != nil || cbErr != nil {
		err := orgErr
		if err == nil {
			err = cbErr
		}
		LogError("Failed to fetch admin requests: %v", err)
		return fmt.Errorf("failed to fetch admin requests: %w", err)
	}

	merged := make([]Request, 0, len(orgReqs)+len(cbReqs))
	merged = append(merged, orgReqs...)
	merged = append(merged, cbReqs...)
	w.requests = merged
	return nil
}

// refreshScoped fetches the single list scoped by the viewer's affiliation.
// Organization name takes precedence; no affiliation at all short-circuits
// to an empty list without a network call.
func (w *Workflow) refreshScoped(ctx context.Context) error {
	orgName := w.profile.OrganizationName
	cbName := w.profile.CertificationBodyName

	var (
		reqs []Request
		err  error
	)
	switch {
	case orgName != "":
		reqs, err = w.svc.OrganizationRequests(ctx, orgName)
	case cbName != "":
		reqs, err = w.svc.CertificationBodyRequests(ctx, cbName)
	default:
		w.requests = nil
		return nil
	}

	if err != nil {
		LogError("Failed to fetch organization requests: %v", err)
		return fmt.Errorf("failed to fetch requests: %w", err)
	}
	w.requests = reqs
	return nil
}

// Buckets returns the three status views plus the explicit unknown bucket.
// The four slices are pairwise disjoint and together cover the full list.
func (w *Workflow) Buckets() (pending, approved, rejected, unknown []Request) {
	for _, r := range w.requests {
		switch r.Status {
		case StatusPending:
			pending = append(pending, r)
		case StatusApproved:
			approved = append(approved, r)
		case StatusRejected:
			rejected = append(rejected, r)
		default:
			unknown = append(unknown, r)
		}
	}
	return pending, approved, rejected, unknown
}

// Select records the transient approve/reject choice for a request id
func (w *Workflow) Select(id, action string) {
	w.processing = &ProcessingRequest{ID: id, Action: action}
}

// Cancel discards the transient selection
func (w *Workflow) Cancel() {
	w.processing = nil
}

// Processing returns the transient selection, if any
func (w *Workflow) Processing() *ProcessingRequest {
	return w.processing
}

// Confirm dispatches the selected approve/reject action with an optional
// admin comment, clears the selection, and refetches the full merged list.
// No optimistic local mutation: correctness comes from the refetch.
func (w *Workflow) Confirm(ctx context.Context, comment string) error {
	if w.processing == nil {
		return ErrNoSelection
	}

	var found *Request
	for i := range w.requests {
		if w.requests[i].ID == w.processing.ID {
			found = &w.requests[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, w.processing.ID)
	}

	if err := w.svc.ReviewRequest(ctx, found.Type, w.processing.Action, w.processing.ID, comment); err != nil {
		return fmt.Errorf("failed to %s request: %w", w.processing.Action, err)
	}

	w.processing = nil
	return w.Refresh(ctx)
}

// BuildCreatePayload selects the payload shape for a guest create-request.
// A non-empty certification-body name picks the certification-body shape and
// suppresses the organization fields entirely; otherwise the organization
// shape is used. One branch, never a merge of both shapes.
func BuildCreatePayload(form NewRequestForm) (RequestType, interface{}) {
	if form.CertificationBodyName != "" {
		return TypeCertificationBody, CertificationBodyRequestPayload{
			CertificationBodyName: form.CertificationBodyName,
			Address:               form.Address,
			ContactEmail:          form.ContactEmail,
			ContactPhone:          form.ContactPhone,
		}
	}
	return TypeOrganization, OrganizationRequestPayload{
		OrganizationName: form.OrganizationName,
		Description:      form.Description,
		Address:          form.Address,
		ContactEmail:     form.ContactEmail,
		ContactPhone:     form.ContactPhone,
	}
}

// ValidateForm checks the guest form before submission
func ValidateForm(form NewRequestForm) error {
	if strings.TrimSpace(form.CertificationBodyName) == "" &&
		strings.TrimSpace(form.OrganizationName) == "" {
		return errors.New("an organization or certification body name is required")
	}
	return nil
}

// Submit creates a new request from the guest form, then refetches the
// scoped list for affiliated viewers. Guests and admins have no list to
// refresh after creating.
func (w *Workflow) Submit(ctx context.Context, form NewRequestForm) (RequestType, error) {
	if err := ValidateForm(form); err != nil {
		return "", err
	}

	typ, payload := BuildCreatePayload(form)
	var err error
	switch p := payload.(type) {
	case CertificationBodyRequestPayload:
		err = w.svc.CreateCertificationBodyRequest(ctx, p)
	case OrganizationRequestPayload:
		err = w.svc.CreateOrganizationRequest(ctx, p)
	}
	if err != nil {
		return typ, fmt.Errorf("failed to submit request: %w", err)
	}

	if w.profile != nil && !w.profile.IsAdmin() && !w.profile.IsGuest() {
		if err := w.refreshScoped(ctx); err != nil {
			LogWarn("Post-submit refresh failed: %v", err)
		}
	}
	return typ, nil
}
