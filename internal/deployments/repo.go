package deployments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrDeploymentNotFound = errors.New("deployment not found")

// Terminal provider states; anything else is still in flight.
const (
	StatusReady    = "READY"
	StatusError    = "ERROR"
	StatusCanceled = "CANCELED"
)

// Deployment is one published instance of a code artifact.
type Deployment struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	DeploymentID string          `json:"deployment_id"`
	URL          string          `json:"url"`
	Status       string          `json:"status"`
	ResponseData json.RawMessage `json:"response_data,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, d *Deployment) (*Deployment, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if len(d.ResponseData) == 0 {
		d.ResponseData = json.RawMessage("{}")
	}

	const q = `
insert into deployments (id, project_id, deployment_id, url, status, response_data)
values ($1, $2, $3, $4, $5, $6::jsonb)
returning created_at;
`
	err := r.db.QueryRowContext(ctx, q, d.ID, d.ProjectID, d.DeploymentID, d.URL, d.Status, []byte(d.ResponseData)).
		Scan(&d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert deployment: %w", err)
	}
	return d, nil
}

// Get returns a deployment owned by the user, resolved through its project.
func (r *Repo) Get(ctx context.Context, userID, id string) (*Deployment, error) {
	const q = `
select d.id, d.project_id, d.deployment_id, d.url, d.status, d.response_data, d.created_at
from deployments d
join projects p on p.id = d.project_id
where d.id = $1 and p.user_id = $2::uuid;
`
	return r.scanDeployment(r.db.QueryRowContext(ctx, q, id, userID))
}

func (r *Repo) ListForProject(ctx context.Context, userID, projectID string) ([]Deployment, error) {
	const q = `
select d.id, d.project_id, d.deployment_id, d.url, d.status, d.response_data, d.created_at
from deployments d
join projects p on p.id = d.project_id
where d.project_id = $1 and p.user_id = $2::uuid
order by d.created_at desc;
`
	rows, err := r.db.QueryContext(ctx, q, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Deployment, 0, 16)
	for rows.Next() {
		d, err := r.scanDeployment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// CountForProject supports verifying that failed deploy calls stay inert.
func (r *Repo) CountForProject(ctx context.Context, projectID string) (int, error) {
	const q = `select count(*) from deployments where project_id = $1;`
	var n int
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListUnfinished returns deployments still in a non-terminal state, for the
// background status refresher.
func (r *Repo) ListUnfinished(ctx context.Context) ([]Deployment, error) {
	const q = `
select id, project_id, deployment_id, url, status, response_data, created_at
from deployments
where status not in ($1, $2, $3)
order by created_at asc;
`
	rows, err := r.db.QueryContext(ctx, q, StatusReady, StatusError, StatusCanceled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Deployment, 0, 16)
	for rows.Next() {
		d, err := r.scanDeployment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id, status, url string, responseData json.RawMessage) error {
	if len(responseData) == 0 {
		responseData = json.RawMessage("{}")
	}
	const q = `
update deployments
set status = $2, url = $3, response_data = $4::jsonb
where id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id, status, url, []byte(responseData))
	return err
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from deployments where id = $1;`
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

func (r *Repo) scanDeployment(row rowScanner) (*Deployment, error) {
	var d Deployment
	var responseData []byte
	err := row.Scan(&d.ID, &d.ProjectID, &d.DeploymentID, &d.URL, &d.Status, &responseData, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDeploymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan deployment: %w", err)
	}
	d.ResponseData = json.RawMessage(responseData)
	return &d, nil
}
