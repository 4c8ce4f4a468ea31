package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var auditBucket = []byte("audit")

// AuditEntry is one persisted audit event.
type AuditEntry struct {
	ID         string `json:"id"`
	Event      string `json:"event"`
	Actor      string `json:"actor,omitempty"`
	RemoteAddr string `json:"remoteAddr,omitempty"`
	Detail     string `json:"detail,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// AuditTrail persists audit events in a bbolt database so the trail
// survives restarts, unlike sessions.
type AuditTrail struct {
	db *bbolt.DB
}

// OpenAuditTrail opens (or creates) the audit database at path.
func OpenAuditTrail(path string) (*AuditTrail, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening audit db: %w", err)
	}
	return &AuditTrail{db: db}, nil
}

// Close closes the underlying database.
func (t *AuditTrail) Close() error {
	return t.db.Close()
}

// Append stores an entry. Keys are the RFC3339Nano timestamp plus a
// uuid, so bbolt's key order is chronological.
func (t *AuditTrail) Append(entry AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return t.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(auditBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(entry.CreatedAt+"|"+entry.ID), data)
	})
}

// List returns up to limit entries, newest first.
func (t *AuditTrail) List(limit int) ([]AuditEntry, error) {
	entries := []AuditEntry{}
	err := t.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(auditBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var entry AuditEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
			if limit > 0 && len(entries) >= limit {
				return nil
			}
		}
		return nil
	})
	return entries, err
}

// ListAudit handles GET /api/admin/audit.
func (a *API) ListAudit(w http.ResponseWriter, r *http.Request) {
	if a.audit.trail == nil {
		writeJSON(w, http.StatusOK, AuditListResponse{Entries: []AuditEntry{}})
		return
	}
	limit, _ := parsePagination(r)
	entries, err := a.audit.trail.List(limit)
	if err != nil {
		writeInternalError(w, "failed to read audit trail", err)
		return
	}
	writeJSON(w, http.StatusOK, AuditListResponse{Entries: entries})
}
