package api

import (
	"log/slog"
	"net/http"
	"time"
)

// AuditEvent identifies the type of security-relevant action being logged.
type AuditEvent string

const (
	AuditLoginSuccess        AuditEvent = "login_success"
	AuditLoginFailure        AuditEvent = "login_failure"
	AuditLoginRateLimited    AuditEvent = "login_rate_limited"
	AuditLogout              AuditEvent = "logout"
	AuditPasswordChanged     AuditEvent = "password_changed"
	AuditAccountCreated      AuditEvent = "account_created"
	AuditAccountUpdated      AuditEvent = "account_updated"
	AuditAccountDeleted      AuditEvent = "account_deleted"
	AuditRecordCreated       AuditEvent = "record_created"
	AuditRecordUpdated       AuditEvent = "record_updated"
	AuditRecordDeleted       AuditEvent = "record_deleted"
	AuditImageUploaded       AuditEvent = "image_uploaded"
	AuditContactReceived     AuditEvent = "contact_received"
	AuditApplicationReceived AuditEvent = "application_received"
)

// auditLogger writes structured audit entries and, when a trail is
// configured, persists them.
type auditLogger struct {
	logger *slog.Logger
	trail  *AuditTrail
}

func newAuditLogger(logger *slog.Logger, trail *AuditTrail) *auditLogger {
	return &auditLogger{
		logger: logger.With("component", "audit"),
		trail:  trail,
	}
}

func (al *auditLogger) log(event AuditEvent, r *http.Request, actor, detail string, attrs ...slog.Attr) {
	baseAttrs := []slog.Attr{
		slog.String("event", string(event)),
		slog.String("remote_addr", r.RemoteAddr),
	}
	if actor != "" {
		baseAttrs = append(baseAttrs, slog.String("account_id", actor))
	}
	if detail != "" {
		baseAttrs = append(baseAttrs, slog.String("detail", detail))
	}
	baseAttrs = append(baseAttrs, attrs...)
	al.logger.LogAttrs(r.Context(), slog.LevelInfo, "audit", baseAttrs...)

	if al.trail != nil {
		// Persistence is best-effort; a full disk must not break logins.
		if err := al.trail.Append(AuditEntry{
			Event:      string(event),
			Actor:      actor,
			RemoteAddr: r.RemoteAddr,
			Detail:     detail,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		}); err != nil {
			al.logger.Warn("audit trail append failed", "error", err)
		}
	}
}

// logEvent records an action attributed to an account.
func (al *auditLogger) logEvent(event AuditEvent, r *http.Request, actor string, attrs ...slog.Attr) {
	al.log(event, r, actor, "", attrs...)
}

// logFailure records a failed or rejected attempt with a reason.
func (al *auditLogger) logFailure(event AuditEvent, r *http.Request, reason string, attrs ...slog.Attr) {
	al.log(event, r, "", reason, attrs...)
}
