package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/logging"
	"github.com/sitegenio/sitegen-backend/internal/projects"
	"github.com/sitegenio/sitegen-backend/internal/sitecode"
)

var ErrNoCode = errors.New("design has no stored code")

// Service publishes stored code artifacts through the hosting provider and
// keeps the local deployment rows in sync with provider state.
type Service struct {
	repo     *Repo
	projects *projects.Repo
	code     *sitecode.Repo
	hosting  *hosting.Client
}

func NewService(repo *Repo, projectRepo *projects.Repo, codeRepo *sitecode.Repo, hostingClient *hosting.Client) *Service {
	return &Service{
		repo:     repo,
		projects: projectRepo,
		code:     codeRepo,
		hosting:  hostingClient,
	}
}

// Deploy uploads the design's current artifact to the project's provider
// project. Nothing is persisted locally unless the provider accepts the
// deployment.
func (s *Service) Deploy(ctx context.Context, userID, projectID, designID string) (*Deployment, error) {
	project, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	artifact, err := s.code.GetCurrent(ctx, designID)
	if err != nil {
		if errors.Is(err, sitecode.ErrCodeNotFound) {
			return nil, ErrNoCode
		}
		return nil, err
	}

	req := hosting.CreateDeploymentRequest{
		Name:    project.Name,
		Project: project.VercelID,
		Files:   BuildManifest(project.Name, artifact),
		Target:  "production",
		ProjectSettings: hosting.ProjectSettings{
			Framework:       "nextjs",
			BuildCommand:    "next build",
			OutputDirectory: ".next",
		},
	}

	created, raw, err := s.hosting.CreateDeployment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider deployment: %w", err)
	}

	status := created.ReadyState
	if status == "" {
		status = "INITIALIZING"
	}
	row := &Deployment{
		ProjectID:    project.ID,
		DeploymentID: created.ID,
		URL:          normalizeURL(created.URL),
		Status:       status,
		ResponseData: raw,
	}
	return s.repo.Create(ctx, row)
}

// Get returns the deployment with its freshest known status. A failed
// provider lookup is logged and the stored row served instead.
func (s *Service) Get(ctx context.Context, userID, id string) (*Deployment, error) {
	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.refreshOne(ctx, d), nil
}

func (s *Service) ListForProject(ctx context.Context, userID, projectID string) ([]Deployment, error) {
	if _, err := s.projects.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListForProject(ctx, userID, projectID)
}

// RemoveResult reports the two independent halves of a deployment removal.
type RemoveResult struct {
	LocalDeleted    bool `json:"local_deleted"`
	ProviderDeleted bool `json:"provider_deleted"`
}

// Remove deletes the provider deployment best-effort, then always removes the
// local row. Either half can fail without blocking the other.
func (s *Service) Remove(ctx context.Context, userID, id string) (*RemoveResult, error) {
	logger := logging.NewLogger(ctx)

	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	res := &RemoveResult{}
	if s.hosting.Configured() && d.DeploymentID != "" {
		if err := s.hosting.DeleteDeployment(ctx, d.DeploymentID); err != nil {
			logger.LogWarnf("remove_deployment", "provider delete failed for %s: %v", d.DeploymentID, err)
		} else {
			res.ProviderDeleted = true
		}
	}

	res.LocalDeleted, err = s.repo.Delete(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RefreshUnfinished re-reads provider state for every deployment that has not
// reached a terminal status. Used by the background refresher.
func (s *Service) RefreshUnfinished(ctx context.Context) (int, error) {
	rows, err := s.repo.ListUnfinished(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range rows {
		before := rows[i].Status
		after := s.refreshOne(ctx, &rows[i])
		if after.Status != before {
			updated++
		}
	}
	return updated, nil
}

// refreshOne pulls live provider state into d. On any provider failure the
// stored row is returned untouched.
func (s *Service) refreshOne(ctx context.Context, d *Deployment) *Deployment {
	if !s.hosting.Configured() || d.DeploymentID == "" {
		return d
	}
	logger := logging.NewLogger(ctx)

	live, raw, err := s.hosting.GetDeployment(ctx, d.DeploymentID)
	if err != nil {
		logger.LogWarnf("refresh_deployment", "provider lookup failed for %s: %v", d.DeploymentID, err)
		return d
	}

	status := live.ReadyState
	if status == "" {
		status = d.Status
	}
	url := d.URL
	if live.URL != "" {
		url = normalizeURL(live.URL)
	}
	if status == d.Status && url == d.URL {
		return d
	}
	if err := s.repo.UpdateStatus(ctx, d.ID, status, url, raw); err != nil {
		logger.LogError("refresh_deployment", err)
		return d
	}
	d.Status = status
	d.URL = url
	d.ResponseData = json.RawMessage(raw)
	return d
}

func normalizeURL(u string) string {
	if u == "" {
		return ""
	}
	if len(u) >= 8 && (u[:7] == "http://" || u[:8] == "https://") {
		return u
	}
	return "https://" + u
}
