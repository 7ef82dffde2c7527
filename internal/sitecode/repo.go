package sitecode

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Upsert writes the "current" artifact for a design and records the same
// content as an immutable version row. The unique design_id constraint makes
// concurrent upserts settle on a single current row.
func (r *Repo) Upsert(ctx context.Context, designID string, a *Artifact) (string, error) {
	a.Normalize()

	frameworkJSON, err := json.Marshal(a.Framework)
	if err != nil {
		return "", fmt.Errorf("marshal framework files: %w", err)
	}

	id := uuid.New().String()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	const upsertQ = `
insert into website_code (id, design_id, html, css, javascript, nextjs_components)
values ($1, $2, $3, $4, $5, $6::jsonb)
on conflict (design_id) do update set
  html = excluded.html,
  css = excluded.css,
  javascript = excluded.javascript,
  nextjs_components = excluded.nextjs_components,
  updated_at = now()
returning id, created_at, updated_at;
`
	err = tx.QueryRowContext(ctx, upsertQ, id, designID, a.HTML, a.CSS, a.JavaScript, frameworkJSON).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("upsert website code: %w", err)
	}

	const versionQ = `
insert into website_code_versions (id, design_id, html, css, javascript, nextjs_components)
values ($1, $2, $3, $4, $5, $6::jsonb);
`
	if _, err := tx.ExecContext(ctx, versionQ, uuid.New().String(), designID, a.HTML, a.CSS, a.JavaScript, frameworkJSON); err != nil {
		return "", fmt.Errorf("insert code version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	a.DesignID = designID
	return a.ID, nil
}

func (r *Repo) GetCurrent(ctx context.Context, designID string) (*Artifact, error) {
	const q = `
select id, design_id, html, css, javascript, nextjs_components, created_at, updated_at
from website_code
where design_id = $1;
`
	var a Artifact
	var frameworkJSON []byte
	err := r.db.QueryRowContext(ctx, q, designID).Scan(
		&a.ID, &a.DesignID, &a.HTML, &a.CSS, &a.JavaScript, &frameworkJSON,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get website code: %w", err)
	}

	a.Framework = decodeFramework(frameworkJSON)
	a.Normalize()
	return &a, nil
}

// ListVersions returns the code history for a design, newest first.
func (r *Repo) ListVersions(ctx context.Context, designID string) ([]VersionInfo, error) {
	const q = `
select id, created_at, nextjs_components
from website_code_versions
where design_id = $1
order by created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, designID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VersionInfo, 0, 8)
	for rows.Next() {
		var v VersionInfo
		var frameworkJSON []byte
		if err := rows.Scan(&v.ID, &v.CreatedAt, &frameworkJSON); err != nil {
			return nil, err
		}
		v.HasFrameworkContent = decodeFramework(frameworkJSON).HasContent()
		out = append(out, v)
	}
	return out, rows.Err()
}

// DeleteCurrentForDesign removes the design's current artifact. Version rows
// stay until the design itself is deleted.
func (r *Repo) DeleteCurrentForDesign(ctx context.Context, designID string) (bool, error) {
	const q = `delete from website_code where design_id = $1;`
	res, err := r.db.ExecContext(ctx, q, designID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// VersionDesignID resolves the design a version row belongs to.
func (r *Repo) VersionDesignID(ctx context.Context, versionID string) (string, error) {
	const q = `select design_id from website_code_versions where id = $1;`
	var designID string
	err := r.db.QueryRowContext(ctx, q, versionID).Scan(&designID)
	if err == sql.ErrNoRows {
		return "", ErrVersionNotFound
	}
	if err != nil {
		return "", err
	}
	return designID, nil
}

// DeleteVersion removes one specific history row.
func (r *Repo) DeleteVersion(ctx context.Context, versionID string) (bool, error) {
	const q = `delete from website_code_versions where id = $1;`
	res, err := r.db.ExecContext(ctx, q, versionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// decodeFramework tolerates malformed stored blobs: a bad row reads back as
// empty groups instead of failing.
func decodeFramework(raw []byte) FrameworkFiles {
	var f FrameworkFiles
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &f)
	}
	f.Normalize()
	return f
}
