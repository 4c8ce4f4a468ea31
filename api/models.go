package api

import (
	"time"

	"github.com/switchgames/site/catalog"
	"github.com/switchgames/site/store"
)

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse acknowledges an operation with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the JSON body for POST /admin/login. Username may be
// empty or the reserved admin name to use the master password.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /admin/login.
type LoginResponse struct {
	Message     string     `json:"message"`
	Token       string     `json:"token"`
	Role        store.Role `json:"role"`
	DisplayName string     `json:"displayName"`
}

// ChangePasswordRequest is the JSON body for POST /admin/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// StatResponse is returned from the public counter endpoints.
type StatResponse struct {
	Message string `json:"message"`
	Value   int64  `json:"value"`
}

// PublicGamesResponse is returned from GET /games.
type PublicGamesResponse struct {
	Games []catalog.EnrichedGame `json:"games"`
}

// GamesResponse is returned from GET /admin/games.
type GamesResponse struct {
	Games []store.Game `json:"games"`
}

// GameResponse wraps a single game record.
type GameResponse struct {
	Message string     `json:"message"`
	Game    store.Game `json:"game"`
}

// CreateGameRequest is the JSON body for POST /admin/games.
type CreateGameRequest struct {
	PlaceID   string `json:"placeId"`
	Thumbnail string `json:"thumbnail"`
	Featured  bool   `json:"featured"`
	Active    *bool  `json:"active"`
}

// UpdateGameRequest is the patch body for PUT /admin/games/{id}. Only
// set fields are applied.
type UpdateGameRequest struct {
	PlaceID    *string `json:"placeId"`
	UniverseID *string `json:"universeId"`
	Thumbnail  *string `json:"thumbnail"`
	Featured   *bool   `json:"featured"`
	Active     *bool   `json:"active"`
}

// PostsResponse is returned from the post listing endpoints.
type PostsResponse struct {
	Posts []store.Post `json:"posts"`
}

// PostResponse wraps a single post record.
type PostResponse struct {
	Message string     `json:"message"`
	Post    store.Post `json:"post"`
}

// CreatePostRequest is the JSON body for POST /admin/posts.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostRequest is the patch body for PUT /admin/posts/{id}.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// CareersResponse is returned from the career listing endpoints.
type CareersResponse struct {
	Careers []store.Career `json:"careers"`
}

// CareerResponse wraps a single career record.
type CareerResponse struct {
	Message string       `json:"message"`
	Career  store.Career `json:"career"`
}

// CreateCareerRequest is the JSON body for POST /admin/careers.
type CreateCareerRequest struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	NiceToHave   []string `json:"niceToHave"`
	Questions    []string `json:"questions"`
	Active       *bool    `json:"active"`
}

// UpdateCareerRequest is the patch body for PUT /admin/careers/{id}.
type UpdateCareerRequest struct {
	Title        *string   `json:"title"`
	Department   *string   `json:"department"`
	Type         *string   `json:"type"`
	Location     *string   `json:"location"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	NiceToHave   *[]string `json:"niceToHave"`
	Questions    *[]string `json:"questions"`
	Active       *bool     `json:"active"`
}

// StaffResponse is returned from the staff listing endpoints.
type StaffResponse struct {
	Staff []store.StaffMember `json:"staff"`
}

// StaffMemberResponse wraps a single staff record.
type StaffMemberResponse struct {
	Message string            `json:"message"`
	Member  store.StaffMember `json:"member"`
}

// CreateStaffMemberRequest is the JSON body for POST /admin/staff.
type CreateStaffMemberRequest struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
	Active *bool  `json:"active"`
}

// UpdateStaffMemberRequest is the patch body for PUT /admin/staff/{id}.
type UpdateStaffMemberRequest struct {
	Name   *string `json:"name"`
	Title  *string `json:"title"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
	Active *bool   `json:"active"`
}

// ContactRequest is the JSON body for the public POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactsResponse is returned from GET /admin/contacts.
type ContactsResponse struct {
	Contacts []store.Contact `json:"contacts"`
}

// ContactResponse wraps a single contact record.
type ContactResponse struct {
	Message string        `json:"message"`
	Contact store.Contact `json:"contact"`
}

// ApplyRequest is the JSON body for the public POST /apply.
type ApplyRequest struct {
	Position   string         `json:"position"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Discord    string         `json:"discord"`
	Portfolio  string         `json:"portfolio"`
	Experience string         `json:"experience"`
	Answers    []store.Answer `json:"answers"`
}

// ApplicationsResponse is returned from GET /admin/applications.
type ApplicationsResponse struct {
	Applications []store.Application `json:"applications"`
}

// ApplicationResponse wraps a single application record.
type ApplicationResponse struct {
	Message     string            `json:"message"`
	Application store.Application `json:"application"`
}

// SetStatusRequest is the JSON body for POST /admin/applications/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// UploadResponse is returned from POST /admin/upload.
type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Account is a staff account with the password hash stripped.
type Account struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Role        store.Role `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLogin   time.Time  `json:"lastLogin,omitzero"`
}

// AccountsResponse is returned from GET /admin/accounts.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// AccountResponse wraps a single account.
type AccountResponse struct {
	Message string  `json:"message"`
	Account Account `json:"account"`
}

// CreateAccountRequest is the JSON body for POST /admin/accounts.
type CreateAccountRequest struct {
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	DisplayName string     `json:"displayName"`
	Role        store.Role `json:"role"`
}

// UpdateAccountRequest is the patch body for PUT /admin/accounts/{id}.
type UpdateAccountRequest struct {
	DisplayName *string     `json:"displayName"`
	Role        *store.Role `json:"role"`
	Password    *string     `json:"password"`
}

// AuditListResponse is returned from GET /admin/audit.
type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
}
