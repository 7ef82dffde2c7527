package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates every table the service needs. Statements are idempotent so
// the call is safe on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			firebase_uid TEXT UNIQUE NOT NULL,
			email TEXT,
			display_name TEXT,
			photo_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS designs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_name TEXT NOT NULL,
			design_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color_palette JSONB NOT NULL DEFAULT '{}',
			typography JSONB NOT NULL DEFAULT '{}',
			layout JSONB NOT NULL DEFAULT '{}',
			features JSONB NOT NULL DEFAULT '[]',
			image_style TEXT NOT NULL DEFAULT '',
			preview_images JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_designs_user_id ON designs(user_id);`,
		`CREATE TABLE IF NOT EXISTS website_code (
			id UUID PRIMARY KEY,
			design_id UUID UNIQUE NOT NULL REFERENCES designs(id) ON DELETE CASCADE,
			html TEXT NOT NULL,
			css TEXT NOT NULL,
			javascript TEXT NOT NULL DEFAULT '',
			nextjs_components JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS website_code_versions (
			id UUID PRIMARY KEY,
			design_id UUID NOT NULL REFERENCES designs(id) ON DELETE CASCADE,
			html TEXT NOT NULL,
			css TEXT NOT NULL,
			javascript TEXT NOT NULL DEFAULT '',
			nextjs_components JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_code_versions_design_id ON website_code_versions(design_id);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			vercel_id TEXT NOT NULL,
			name TEXT NOT NULL,
			framework TEXT NOT NULL DEFAULT 'nextjs',
			response_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS deployments (
			id UUID PRIMARY KEY,
			project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			deployment_id TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			response_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_deployments_project_id ON deployments(project_id);`,
		`CREATE TABLE IF NOT EXISTS domains (
			id UUID PRIMARY KEY,
			project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT false,
			deployment_id UUID REFERENCES deployments(id) ON DELETE SET NULL,
			response_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (project_id, name)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
