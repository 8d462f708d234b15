package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghollosi/next-sub004/internal/data/pgxutil"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/ports"
)

// AuditLog appends login outcome records to the login_audit table.
// Implements ports.AuditSink. The table is insert-only from this service;
// nothing here updates or deletes rows.
type AuditLog struct {
	DB *sql.DB
}

var _ ports.AuditSink = (*AuditLog)(nil)

// NewAuditLog creates a new AuditLog.
func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{DB: db}
}

// Record inserts one audit entry. ID and timestamp are filled in when the
// caller left them empty. Once the insert commits it is never rolled back,
// regardless of what happens to the originating request.
func (a *AuditLog) Record(ctx context.Context, entry ports.AuditEntry) error {
	if entry.Event == "" {
		return errors.New("audit entry requires an event")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	err := pgxutil.WithPgxConn(ctx, a.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO login_audit (
				id, event, email, kind, account_id, reason, remote_addr, user_agent, occurred_at
			) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		`,
			entry.ID,
			string(entry.Event),
			entry.Email,
			string(entry.Kind),
			entry.AccountID,
			entry.Reason,
			entry.RemoteAddr,
			entry.UserAgent,
			entry.OccurredAt,
		)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}
