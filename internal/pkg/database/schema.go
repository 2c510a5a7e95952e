package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// InitSchema creates the application tables if they don't exist.
// Status columns carry CHECK constraints mirroring the closed enums in the
// domain packages; rewards carry the (user_id, tier) uniqueness guarantee.
func InitSchema(db *sqlx.DB) error {
	statements := []struct {
		name string
		ddl  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL CHECK (role IN ('citizen', 'volunteer', 'moderator', 'admin')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`},
		{"reports", `
			CREATE TABLE IF NOT EXISTS reports (
				id UUID PRIMARY KEY,
				citizen_id UUID NOT NULL REFERENCES users(id),
				category TEXT NOT NULL,
				description TEXT NOT NULL,
				severity TEXT NOT NULL CHECK (severity IN ('low', 'medium', 'high')),
				location_text TEXT NOT NULL,
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				photo_key TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'valid', 'invalid', 'assigned', 'in_progress', 'completed')),
				moderator_notes TEXT,
				is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`},
		{"tasks", `
			CREATE TABLE IF NOT EXISTS tasks (
				id UUID PRIMARY KEY,
				report_id UUID NOT NULL UNIQUE REFERENCES reports(id),
				assigned_volunteer_id UUID REFERENCES users(id),
				status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'assigned', 'in_progress', 'completed')),
				assigned_at TIMESTAMPTZ,
				completed_at TIMESTAMPTZ
			)`},
		{"proofs", `
			CREATE TABLE IF NOT EXISTS proofs (
				id UUID PRIMARY KEY,
				task_id UUID NOT NULL UNIQUE REFERENCES tasks(id),
				volunteer_id UUID NOT NULL REFERENCES users(id),
				photo_key TEXT NOT NULL,
				notes TEXT NOT NULL DEFAULT '',
				uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`},
		{"rewards", `
			CREATE TABLE IF NOT EXISTS rewards (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				tier INT NOT NULL,
				brand TEXT NOT NULL,
				code TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (user_id, tier)
			)`},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}

	log.Info().Msg("Database schema initialized")
	return nil
}
