package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

// Tables that publish change notifications.
const (
	TableRegistrations = "registrations"
	TableCategories    = "categories"
	TablePanchayaths   = "panchayaths"
)

var channelPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var baseSchema = []string{
	`CREATE TABLE IF NOT EXISTS registrations (
		id              UUID PRIMARY KEY,
		uid             TEXT NOT NULL UNIQUE,
		category        TEXT NOT NULL,
		full_name       TEXT NOT NULL,
		address         TEXT NOT NULL,
		whatsapp_number TEXT NOT NULL,
		mobile_number   TEXT NOT NULL,
		email           TEXT,
		panchayath      TEXT NOT NULL,
		ward            TEXT NOT NULL,
		pro_details     TEXT,
		status          TEXT NOT NULL DEFAULT 'Pending'
		                CHECK (status IN ('Pending', 'Approved', 'Rejected')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// one row per phone number, whichever column it came from
	`CREATE TABLE IF NOT EXISTS registration_phones (
		phone           TEXT PRIMARY KEY,
		registration_id UUID NOT NULL REFERENCES registrations(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_registrations_created_at ON registrations (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE,
		name_ml        TEXT,
		actual_fee     NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (actual_fee >= 0),
		offer_fee      NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (offer_fee >= 0),
		division       TEXT NOT NULL DEFAULT '',
		description    TEXT,
		description_ml TEXT,
		image_url      TEXT,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS panchayaths (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE,
		malayalam_name TEXT,
		district       TEXT NOT NULL,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL CHECK (role IN ('super', 'local', 'user')),
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func notifySchema(channel string) []string {
	stmts := []string{
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('%s', json_build_object('table', TG_TABLE_NAME, 'op', TG_OP)::text);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`, channel),
	}

	for _, table := range []string{TableRegistrations, TableCategories, TablePanchayaths} {
		trigger := table + "_notify_change"
		stmts = append(stmts,
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table),
			fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH STATEMENT EXECUTE FUNCTION notify_table_change()`, trigger, table),
		)
	}
	return stmts
}

// SchemaStatements returns the DDL in execution order.
func SchemaStatements(channel string) ([]string, error) {
	if !channelPattern.MatchString(channel) {
		return nil, fmt.Errorf("invalid notification channel %q", channel)
	}
	out := make([]string, 0, len(baseSchema)+7)
	out = append(out, baseSchema...)
	return append(out, notifySchema(channel)...), nil
}

// EnsureSchema creates tables, constraints and change triggers inside one transaction.
func EnsureSchema(ctx context.Context, db *sql.DB, channel string) error {
	stmts, err := SchemaStatements(channel)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
