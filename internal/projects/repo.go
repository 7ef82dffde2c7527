package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

// Project mirrors a hosting-provider project locally. It is the join point
// for deployments and domains.
type Project struct {
	ID           string          `json:"id"`
	VercelID     string          `json:"vercel_id"`
	Name         string          `json:"name"`
	Framework    string          `json:"framework"`
	ResponseData json.RawMessage `json:"response_data,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, userID string, p *Project) (*Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if len(p.ResponseData) == 0 {
		p.ResponseData = json.RawMessage("{}")
	}

	const q = `
insert into projects (id, user_id, vercel_id, name, framework, response_data)
values ($1, $2::uuid, $3, $4, $5, $6::jsonb)
returning created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, p.ID, userID, p.VercelID, p.Name, p.Framework, []byte(p.ResponseData)).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (*Project, error) {
	const q = `
select id, vercel_id, name, framework, response_data, created_at, updated_at
from projects
where id = $1 and user_id = $2::uuid;
`
	var p Project
	var responseData []byte
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&p.ID, &p.VercelID, &p.Name, &p.Framework, &responseData, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	p.ResponseData = json.RawMessage(responseData)
	return &p, nil
}

func (r *Repo) List(ctx context.Context, userID string) ([]Project, error) {
	const q = `
select id, vercel_id, name, framework, response_data, created_at, updated_at
from projects
where user_id = $1::uuid
order by created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		var responseData []byte
		if err := rows.Scan(&p.ID, &p.VercelID, &p.Name, &p.Framework, &responseData, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.ResponseData = json.RawMessage(responseData)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes the local mirror; deployments and domains cascade.
func (r *Repo) Delete(ctx context.Context, userID, id string) (bool, error) {
	const q = `delete from projects where id = $1 and user_id = $2::uuid;`
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
