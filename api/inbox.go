package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/switchgames/site/store"
)

// ---------------------------------------------------------------------------
// Public form intake
// ---------------------------------------------------------------------------

// SubmitContact handles the public POST /api/contact.
func (a *API) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if !a.formLimiter.allow(extractClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many submissions; slow down")
		return
	}
	req, ok := decodeJSON[ContactRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if anyEmpty(req.Name, req.Email, req.Subject, req.Message) {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	contact := store.Contact{
		Meta:    store.NewMeta(time.Now()),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := a.stores.Contacts.Insert(contact); err != nil {
		writeInternalError(w, "failed to save message", err)
		return
	}

	a.notifier.ContactReceived(contact)
	a.audit.logFailure(AuditContactReceived, r, "")
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Message sent successfully"})
}

// SubmitApplication handles the public POST /api/apply.
func (a *API) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	if !a.formLimiter.allow(extractClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many submissions; slow down")
		return
	}
	req, ok := decodeJSON[ApplyRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if anyEmpty(req.Position, req.Name, req.Email, req.Experience) {
		writeError(w, http.StatusBadRequest, "Position, name, email, and experience are required")
		return
	}

	application := store.Application{
		Meta:       store.NewMeta(time.Now()),
		Position:   strings.TrimSpace(req.Position),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Discord:    strings.TrimSpace(req.Discord),
		Portfolio:  strings.TrimSpace(req.Portfolio),
		Experience: strings.TrimSpace(req.Experience),
		Answers:    req.Answers,
		Status:     store.ApplicationStatusNew,
	}
	if err := a.stores.Applications.Insert(application); err != nil {
		writeInternalError(w, "failed to save application", err)
		return
	}

	a.notifier.ApplicationReceived(application)
	a.audit.logFailure(AuditApplicationReceived, r, "")
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Application submitted successfully"})
}

func anyEmpty(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Admin inbox
// ---------------------------------------------------------------------------

// ListContacts handles GET /api/admin/contacts, newest first.
func (a *API) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	contacts := paginate(a.stores.Contacts.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, ContactsResponse{Contacts: contacts})
}

// MarkContactRead handles POST /api/admin/contacts/{id}/read.
func (a *API) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	contact, err := a.stores.Contacts.Update(id, func(c *store.Contact) {
		c.Read = true
		c.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContactResponse{Message: "Marked as read", Contact: contact})
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
func (a *API) DeleteContact(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "contact", a.stores.Contacts.Delete, "Message deleted")
}

// ListApplications handles GET /api/admin/applications, newest first.
func (a *API) ListApplications(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	applications := paginate(a.stores.Applications.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, ApplicationsResponse{Applications: applications})
}

// MarkApplicationRead handles POST /api/admin/applications/{id}/read.
func (a *API) MarkApplicationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	application, err := a.stores.Applications.Update(id, func(app *store.Application) {
		app.Read = true
		app.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApplicationResponse{Message: "Marked as read", Application: application})
}

// SetApplicationStatus handles POST /api/admin/applications/{id}/status.
func (a *API) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[SetStatusRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	if !store.ValidApplicationStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	application, err := a.stores.Applications.Update(id, func(app *store.Application) {
		app.Status = req.Status
		app.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApplicationResponse{Message: "Status updated", Application: application})
}

// DeleteApplication handles DELETE /api/admin/applications/{id}.
func (a *API) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "application", a.stores.Applications.Delete, "Application deleted")
}
