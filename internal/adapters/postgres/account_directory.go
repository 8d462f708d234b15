package postgres

// Package postgres implements the account directory and the audit log over
// the platform's PostgreSQL schema. The five account kinds live in five
// distinct tables with near-identical shape; every query projects onto one
// uniform row so the resolver can stay kind-agnostic.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ghollosi/next-sub004/internal/data/pgxutil"
	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/ports"
)

// accountRow is the uniform projection shared by all per-kind queries.
// Scope columns are NULL for kinds they do not apply to.
type accountRow struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	DisplayName  string  `db:"display_name"`
	PasswordHash *string `db:"password_hash"`
	TenantID     *string `db:"tenant_id"`
	TenantName   *string `db:"tenant_name"`
	TenantSlug   *string `db:"tenant_slug"`
	LocationID   *string `db:"location_id"`
	LocationName *string `db:"location_name"`
	PartnerID    *string `db:"partner_id"`
	PartnerName  *string `db:"partner_name"`
}

// accountQueries maps each kind to its lookup. All queries filter on
// active, non-deleted rows and bind the normalized email as $1.
var accountQueries = map[identity.Kind]string{
	identity.KindPlatformOperator: `
		SELECT o.id::text AS id, o.email, o.name AS display_name, o.password_hash,
		       NULL::text AS tenant_id, NULL::text AS tenant_name, NULL::text AS tenant_slug,
		       NULL::text AS location_id, NULL::text AS location_name,
		       NULL::text AS partner_id, NULL::text AS partner_name
		FROM platform_operators o
		WHERE lower(o.email) = $1 AND o.is_active AND o.deleted_at IS NULL`,
	identity.KindTenantAdmin: `
		SELECT a.id::text AS id, a.email, a.name AS display_name, a.password_hash,
		       t.id::text AS tenant_id, t.name AS tenant_name, t.slug AS tenant_slug,
		       NULL::text AS location_id, NULL::text AS location_name,
		       NULL::text AS partner_id, NULL::text AS partner_name
		FROM tenant_admins a
		JOIN tenants t ON t.id = a.tenant_id AND t.deleted_at IS NULL
		WHERE lower(a.email) = $1 AND a.is_active AND a.deleted_at IS NULL`,
	identity.KindLocationStaff: `
		SELECT s.id::text AS id, s.email, s.name AS display_name, s.password_hash,
		       t.id::text AS tenant_id, t.name AS tenant_name, t.slug AS tenant_slug,
		       l.id::text AS location_id, l.name AS location_name,
		       NULL::text AS partner_id, NULL::text AS partner_name
		FROM location_staff s
		JOIN locations l ON l.id = s.location_id AND l.deleted_at IS NULL
		JOIN tenants t ON t.id = l.tenant_id AND t.deleted_at IS NULL
		WHERE lower(s.email) = $1 AND s.is_active AND s.deleted_at IS NULL`,
	identity.KindPartnerContact: `
		SELECT c.id::text AS id, c.email, c.name AS display_name, c.password_hash,
		       NULL::text AS tenant_id, NULL::text AS tenant_name, NULL::text AS tenant_slug,
		       NULL::text AS location_id, NULL::text AS location_name,
		       p.id::text AS partner_id, p.name AS partner_name
		FROM partner_contacts c
		JOIN partners p ON p.id = c.partner_id AND p.deleted_at IS NULL
		WHERE lower(c.email) = $1 AND c.is_active AND c.deleted_at IS NULL`,
	identity.KindCustomer: `
		SELECT u.id::text AS id, u.email, u.name AS display_name, u.password_hash,
		       NULL::text AS tenant_id, NULL::text AS tenant_name, NULL::text AS tenant_slug,
		       NULL::text AS location_id, NULL::text AS location_name,
		       p.id::text AS partner_id, p.name AS partner_name
		FROM customers u
		LEFT JOIN partners p ON p.id = u.partner_id AND p.deleted_at IS NULL
		WHERE lower(u.email) = $1 AND u.is_active AND u.deleted_at IS NULL`,
}

// AccountDirectory provides per-kind account lookups. Implements
// ports.AccountDirectory.
type AccountDirectory struct {
	DB *sql.DB
}

var _ ports.AccountDirectory = (*AccountDirectory)(nil)

// NewAccountDirectory creates a new AccountDirectory.
func NewAccountDirectory(db *sql.DB) *AccountDirectory {
	return &AccountDirectory{DB: db}
}

// FindActiveByEmail returns all active, non-deleted accounts of one kind
// matching the normalized email. Rows without a stored password hash are
// returned as-is; skipping them is the resolver's call, not the store's.
func (d *AccountDirectory) FindActiveByEmail(
	ctx context.Context,
	kind identity.Kind,
	email string,
) ([]ports.AccountRecord, error) {
	query, ok := accountQueries[kind]
	if !ok {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}

	var rows []accountRow
	err := pgxutil.WithPgxConn(ctx, d.DB, func(conn *pgx.Conn) error {
		result, queryErr := conn.Query(ctx, query, email)
		if queryErr != nil {
			return queryErr
		}
		defer result.Close()
		var collectErr error
		rows, collectErr = pgx.CollectRows(result, pgx.RowToStructByName[accountRow])
		return collectErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	records := make([]ports.AccountRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (r accountRow) toRecord() ports.AccountRecord {
	return ports.AccountRecord{
		AccountID:    r.ID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PasswordHash: deref(r.PasswordHash),
		Scope: identity.ScopeContext{
			TenantID:     deref(r.TenantID),
			TenantName:   deref(r.TenantName),
			TenantSlug:   deref(r.TenantSlug),
			LocationID:   deref(r.LocationID),
			LocationName: deref(r.LocationName),
			PartnerID:    deref(r.PartnerID),
			PartnerName:  deref(r.PartnerName),
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
