package store

import (
	"time"

	"github.com/switchgames/site/internal/util"
)

// Meta carries the fields shared by every record: an immutable random
// hex ID and creation/update timestamps.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID implements Record.
func (m Meta) RecordID() string { return m.ID }

// NewMeta returns metadata for a freshly created record. CreatedAt and
// UpdatedAt start equal.
func NewMeta(now time.Time) Meta {
	now = now.UTC()
	return Meta{ID: util.RandomHex(8), CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes the update timestamp.
func (m *Meta) Touch(now time.Time) { m.UpdatedAt = now.UTC() }

// Game is a catalog entry for one of the studio's games. Live stats
// (visits, player counts) are not stored; they are fetched from the
// external catalog at listing time.
type Game struct {
	Meta
	PlaceID    string `json:"placeId"`
	UniverseID string `json:"universeId"`
	Thumbnail  string `json:"thumbnail"`
	Featured   bool   `json:"featured"`
	Active     bool   `json:"active"`
}

// Post is a blog post. Only published posts appear on the public site.
type Post struct {
	Meta
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// Career is an open position. Only active careers appear publicly.
type Career struct {
	Meta
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	NiceToHave   []string `json:"niceToHave"`
	Questions    []string `json:"questions"`
	Active       bool     `json:"active"`
}

// StaffMember is a public team-page entry, distinct from StaffAccount
// which is an admin login.
type StaffMember struct {
	Meta
	Name   string `json:"name"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
	Active bool   `json:"active"`
}

// Contact is an inbound contact-form submission.
type Contact struct {
	Meta
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

// Answer pairs an application question with the applicant's answer.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Application statuses.
const (
	ApplicationStatusNew       = "new"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewing,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is an inbound job application.
type Application struct {
	Meta
	Position   string   `json:"position"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Discord    string   `json:"discord"`
	Portfolio  string   `json:"portfolio"`
	Experience string   `json:"experience"`
	Answers    []Answer `json:"answers"`
	Status     string   `json:"status"`
	Read       bool     `json:"read"`
}

// Role is a permission tier for admin accounts, from highest to lowest:
// superadmin, admin, moderator, editor.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleEditor     Role = "editor"
)

var roleLevels = map[Role]int{
	RoleSuperadmin: 4,
	RoleAdmin:      3,
	RoleModerator:  2,
	RoleEditor:     1,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants at least the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return roleLevels[r] >= roleLevels[min]
}

// StaffAccount is an admin login. The password hash is argon2id for
// accounts created through the API; 64-char sha256 hex digests from
// older deployments still verify.
type StaffAccount struct {
	Meta
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	DisplayName  string    `json:"displayName"`
	Role         Role      `json:"role"`
	LastLogin    time.Time `json:"lastLogin,omitzero"`
}
