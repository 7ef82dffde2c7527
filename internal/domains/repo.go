package domains

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrDomainNotFound = errors.New("domain not found")

// Domain is a custom hostname bound to a project, mirrored from the hosting
// provider. DeploymentID points at the local deployment row the domain is
// assigned to, when any.
type Domain struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	Name         string          `json:"name"`
	Verified     bool            `json:"verified"`
	DeploymentID *string         `json:"deployment_id,omitempty"`
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

func (r *Repo) Create(ctx context.Context, d *Domain) (*Domain, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if len(d.ResponseData) == 0 {
		d.ResponseData = json.RawMessage("{}")
	}

	const q = `
insert into domains (id, project_id, name, verified, deployment_id, response_data)
values ($1, $2, $3, $4, $5, $6::jsonb)
returning created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, d.ID, d.ProjectID, d.Name, d.Verified, d.DeploymentID, []byte(d.ResponseData)).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert domain: %w", err)
	}
	return d, nil
}

// Get returns a domain owned by the user, resolved through its project.
func (r *Repo) Get(ctx context.Context, userID, id string) (*Domain, error) {
	const q = `
select d.id, d.project_id, d.name, d.verified, d.deployment_id, d.response_data, d.created_at, d.updated_at
from domains d
join projects p on p.id = d.project_id
where d.id = $1 and p.user_id = $2::uuid;
`
	return r.scanDomain(r.db.QueryRowContext(ctx, q, id, userID))
}

func (r *Repo) ListForProject(ctx context.Context, userID, projectID string) ([]Domain, error) {
	const q = `
select d.id, d.project_id, d.name, d.verified, d.deployment_id, d.response_data, d.created_at, d.updated_at
from domains d
join projects p on p.id = d.project_id
where d.project_id = $1 and p.user_id = $2::uuid
order by d.created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Domain, 0, 8)
	for rows.Next() {
		d, err := r.scanDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repo) SetVerified(ctx context.Context, id string, verified bool, responseData json.RawMessage) error {
	if len(responseData) == 0 {
		responseData = json.RawMessage("{}")
	}
	const q = `
update domains
set verified = $2, response_data = $3::jsonb, updated_at = now()
where id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id, verified, []byte(responseData))
	return err
}

func (r *Repo) SetDeployment(ctx context.Context, id, deploymentID string, responseData json.RawMessage) error {
	if len(responseData) == 0 {
		responseData = json.RawMessage("{}")
	}
	const q = `
update domains
set deployment_id = $2, response_data = $3::jsonb, updated_at = now()
where id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id, deploymentID, []byte(responseData))
	return err
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from domains where id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
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

func (r *Repo) scanDomain(row rowScanner) (*Domain, error) {
	var d Domain
	var deploymentID sql.NullString
	var responseData []byte
	err := row.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Verified, &deploymentID, &responseData, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDomainNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	if deploymentID.Valid {
		d.DeploymentID = &deploymentID.String
	}
	d.ResponseData = json.RawMessage(responseData)
	return &d, nil
}
