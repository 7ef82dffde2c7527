package designs

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

// Save persists a design candidate the user chose to keep. Designs are
// immutable once saved.
func (r *Repo) Save(ctx context.Context, userID string, d *Design) (*Design, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.Normalize()

	paletteJSON, err := json.Marshal(d.ColorPalette)
	if err != nil {
		return nil, fmt.Errorf("marshal color palette: %w", err)
	}
	typographyJSON, err := json.Marshal(d.Typography)
	if err != nil {
		return nil, fmt.Errorf("marshal typography: %w", err)
	}
	layoutJSON, err := json.Marshal(d.Layout)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	featuresJSON, err := json.Marshal(d.Features)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}
	previewJSON, err := json.Marshal(d.PreviewImages)
	if err != nil {
		return nil, fmt.Errorf("marshal preview images: %w", err)
	}

	const q = `
insert into designs (id, user_id, company_name, design_name, description,
                     color_palette, typography, layout, features, image_style, preview_images)
values ($1, $2::uuid, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9::jsonb, $10, $11::jsonb)
returning created_at, updated_at;
`
	err = r.db.QueryRowContext(ctx, q,
		d.ID, userID, d.CompanyName, d.DesignName, d.Description,
		paletteJSON, typographyJSON, layoutJSON, featuresJSON, d.ImageStyle, previewJSON,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert design: %w", err)
	}
	return d, nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (*Design, error) {
	const q = `
select id, company_name, design_name, description,
       color_palette, typography, layout, features, image_style, preview_images,
       created_at, updated_at
from designs
where id = $1 and user_id = $2::uuid;
`
	return r.scanDesign(r.db.QueryRowContext(ctx, q, id, userID))
}

func (r *Repo) List(ctx context.Context, userID string) ([]Design, error) {
	const q = `
select id, company_name, design_name, description,
       color_palette, typography, layout, features, image_style, preview_images,
       created_at, updated_at
from designs
where user_id = $1::uuid
order by created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Design, 0, 16)
	for rows.Next() {
		d, err := r.scanDesign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Delete removes a design; associated code rows and their versions go with it
// via the foreign key cascade.
func (r *Repo) Delete(ctx context.Context, userID, id string) (bool, error) {
	const q = `delete from designs where id = $1 and user_id = $2::uuid;`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repo) scanDesign(row rowScanner) (*Design, error) {
	var d Design
	var paletteJSON, typographyJSON, layoutJSON, featuresJSON, previewJSON []byte

	err := row.Scan(
		&d.ID, &d.CompanyName, &d.DesignName, &d.Description,
		&paletteJSON, &typographyJSON, &layoutJSON, &featuresJSON, &d.ImageStyle, &previewJSON,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDesignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan design: %w", err)
	}

	// A malformed stored blob yields the zero value instead of failing the read.
	_ = json.Unmarshal(paletteJSON, &d.ColorPalette)
	_ = json.Unmarshal(typographyJSON, &d.Typography)
	_ = json.Unmarshal(layoutJSON, &d.Layout)
	_ = json.Unmarshal(featuresJSON, &d.Features)
	_ = json.Unmarshal(previewJSON, &d.PreviewImages)

	d.Normalize()
	return &d, nil
}
