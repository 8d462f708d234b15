package devseed

// Package devseed populates a development database with a small wash
// network: one tenant with a location, one partner, and demo accounts.
// Two accounts share an email so the role-selection flow can be exercised
// locally. Never runs outside dev mode.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/ghollosi/next-sub004/internal/adapters/password"
)

const (
	demoPassword = "washme123"

	// MinCost keeps dev startup fast; production hashes use DefaultCost.
	seedCost = bcrypt.MinCost
)

// Run seeds demo data. Idempotent: a marker row in the tenants table makes
// repeated startups a no-op.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	var seeded bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tenants WHERE slug = 'sparkle-wash')`,
	).Scan(&seeded)
	if err != nil {
		return fmt.Errorf("check seed marker: %w", err)
	}
	if seeded {
		logger.InfoContext(ctx, "dev seed already present, skipping")
		return nil
	}

	hash, err := password.Hash(demoPassword, seedCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var tenantID, locationID, partnerID string
	if err = tx.QueryRowContext(ctx,
		`INSERT INTO tenants (name, slug) VALUES ('Sparkle Wash', 'sparkle-wash') RETURNING id::text`,
	).Scan(&tenantID); err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}
	if err = tx.QueryRowContext(ctx,
		`INSERT INTO locations (tenant_id, name) VALUES ($1, 'Sparkle Wash Downtown') RETURNING id::text`,
		tenantID,
	).Scan(&locationID); err != nil {
		return fmt.Errorf("seed location: %w", err)
	}
	if err = tx.QueryRowContext(ctx,
		`INSERT INTO partners (name) VALUES ('FleetCare Logistics') RETURNING id::text`,
	).Scan(&partnerID); err != nil {
		return fmt.Errorf("seed partner: %w", err)
	}

	seeds := []struct {
		table string
		query string
		args  []any
	}{
		{
			table: "platform_operators",
			query: `INSERT INTO platform_operators (email, name, password_hash) VALUES ($1, $2, $3)`,
			args:  []any{"ops@washnet.dev", "Network Operator", hash},
		},
		{
			table: "tenant_admins",
			query: `INSERT INTO tenant_admins (tenant_id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
			args:  []any{tenantID, "alex@sparklewash.dev", "Alex Admin", hash},
		},
		{
			table: "location_staff",
			query: `INSERT INTO location_staff (location_id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
			args:  []any{locationID, "sam@sparklewash.dev", "Sam Staff", hash},
		},
		{
			table: "partner_contacts",
			query: `INSERT INTO partner_contacts (partner_id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
			args:  []any{partnerID, "fleet@fleetcare.dev", "Fleet Contact", hash},
		},
		{
			table: "customers",
			query: `INSERT INTO customers (partner_id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
			args:  []any{partnerID, "pat@example.dev", "Pat Driver", hash},
		},
		{
			// Same email as the tenant admin: logging in as
			// alex@sparklewash.dev triggers role selection.
			table: "customers",
			query: `INSERT INTO customers (email, name, password_hash) VALUES ($1, $2, $3)`,
			args:  []any{"alex@sparklewash.dev", "Alex (personal)", hash},
		},
	}
	for _, s := range seeds {
		if _, err = tx.ExecContext(ctx, s.query, s.args...); err != nil {
			return fmt.Errorf("seed %s: %w", s.table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	logger.InfoContext(ctx, "dev seed applied",
		"tenant", "sparkle-wash",
		"demo_password", demoPassword,
	)
	return nil
}
