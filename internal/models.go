package internal

import (
	"strings"
)

// Message represents one turn in a chat transcript
type Message struct {
	Role    string `json:"role" yaml:"role"` // "user" or "assistant"
	Content string `json:"content" yaml:"content"`
}

// Session represents a chat conversation identified by a server-issued id.
// The id may be present without messages; history hydration fills them in.
type Session struct {
	SessionID string    `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// UserProfile is the resolved identity of the logged-in user
type UserProfile struct {
	Role                  string `json:"role"`
	Name                  string `json:"name"`
	OrganizationName      string `json:"organization_name,omitempty"`
	CertificationBodyName string `json:"certification_body_name,omitempty"`
}

// IsAdmin reports whether the profile has the ADMIN role
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsGuest reports whether the profile has the GUEST role
func (p *UserProfile) IsGuest() bool {
	return p != nil && p.Role == RoleGuest
}

// Known roles. The server may emit namespaced values such as "RoleEnum.ADMIN";
// NormalizeRole strips the namespace at the network boundary.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
	RoleGuest    = "GUEST"
	RoleAuditor  = "AUDITOR"
)

// NormalizeRole strips a dotted namespace prefix from a role value and
// defaults to GUEST when the result is empty.
func NormalizeRole(raw string) string {
	role := raw
	if i := strings.LastIndex(raw, "."); i >= 0 {
		role = raw[i+1:]
	}
	if role == "" {
		return RoleGuest
	}
	return role
}

// RequestStatus is the closed set of request states. Server values may carry
// an enum namespace ("RequestStatus.PENDING"); ParseStatus normalizes them
// once, at the network boundary, so nothing downstream matches substrings.
type RequestStatus int

const (
	StatusUnknown RequestStatus = iota
	StatusPending
	StatusApproved
	StatusRejected
)

// ParseStatus maps a raw server status string onto the closed status set.
// Values matching none of the known tokens land in StatusUnknown rather
// than silently disappearing.
func ParseStatus(raw string) RequestStatus {
	switch {
	case strings.Contains(raw, "PENDING"):
		return StatusPending
	case strings.Contains(raw, "APPROVED"):
		return StatusApproved
	case strings.Contains(raw, "REJECTED"):
		return StatusRejected
	default:
		return StatusUnknown
	}
}

// String returns the display token for a status
func (s RequestStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusApproved:
		return "APPROVED"
	case StatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// RequestType discriminates the two approval pipelines
type RequestType string

const (
	TypeOrganization      RequestType = "Organization"
	TypeCertificationBody RequestType = "Certification Body"
)

// OrganizationRequestData carries the fields of an organization creation request
type OrganizationRequestData struct {
	OrganizationName string `json:"organization_name"`
	Description      string `json:"description,omitempty"`
	Address          string `json:"address,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`
	ContactPhone     string `json:"contact_phone,omitempty"`
	AdminComment     string `json:"admin_comment,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// CertificationBodyRequestData carries the fields of a certification-body
// creation request. There is no description field for this variant.
type CertificationBodyRequestData struct {
	CertificationBodyName string `json:"certification_body_name"`
	Address               string `json:"address,omitempty"`
	ContactEmail          string `json:"contact_email,omitempty"`
	ContactPhone          string `json:"contact_phone,omitempty"`
	AdminComment          string `json:"admin_comment,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
}

// Request is one entry in an approval pipeline, tagged with its originating
// type. Exactly one of Organization/CertificationBody is set, per Type.
type Request struct {
	ID                string
	Type              RequestType
	Status            RequestStatus
	Organization      *OrganizationRequestData
	CertificationBody *CertificationBodyRequestData
}

// Name returns the display name of the entity being requested
func (r *Request) Name() string {
	switch r.Type {
	case TypeCertificationBody:
		if r.CertificationBody != nil {
			return r.CertificationBody.CertificationBodyName
		}
	default:
		if r.Organization != nil {
			return r.Organization.OrganizationName
		}
	}
	return "Unnamed Request"
}

// ProcessingRequest is the transient selection of an approve/reject action,
// alive only between choosing the action and confirming it.
type ProcessingRequest struct {
	ID     string
	Action string // "approve" or "reject"
}

// NewRequestForm holds the guest create-request form fields
type NewRequestForm struct {
	OrganizationName      string
	CertificationBodyName string
	Description           string
	Address               string
	ContactEmail          string
	ContactPhone          string
}

// User is a platform user as listed by the admin or organization views
type User struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Role              string `json:"role,omitempty"`
	Organization      string `json:"organization,omitempty"`
	CertificationBody string `json:"certification_body,omitempty"`
}

// Invitation is a pending organization membership invitation
type Invitation struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

// Standard is one ISO standard in the catalog
type Standard struct {
	Iso                string `json:"Iso"`
	Category           string `json:"Category"`
	SubCategory        string `json:"SubCategory"`
	Description        string `json:"description"`
	Edition            string `json:"edition"`
	NumberOfPages      string `json:"number_of_pages"`
	Stage              string `json:"stage"`
	TechnicalCommittee string `json:"technical_committee"`
	URL                string `json:"url"`
	PublicationDate    string `json:"publication_date"`
}
