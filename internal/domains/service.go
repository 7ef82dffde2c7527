package domains

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sitegenio/sitegen-backend/internal/deployments"
	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/logging"
	"github.com/sitegenio/sitegen-backend/internal/projects"
)

var (
	ErrInvalidName     = errors.New("invalid domain name")
	ErrProjectMismatch = errors.New("domain and deployment belong to different projects")
)

var domainNameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// Service manages custom domains against the hosting provider, mirroring
// provider state into local rows.
type Service struct {
	repo        *Repo
	projects    *projects.Repo
	deployments *deployments.Repo
	hosting     *hosting.Client
}

func NewService(repo *Repo, projectRepo *projects.Repo, deploymentRepo *deployments.Repo, hostingClient *hosting.Client) *Service {
	return &Service{
		repo:        repo,
		projects:    projectRepo,
		deployments: deploymentRepo,
		hosting:     hostingClient,
	}
}

// Add registers the domain with the provider project and mirrors it locally.
func (s *Service) Add(ctx context.Context, userID, projectID, name string) (*Domain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !domainNameRe.MatchString(name) {
		return nil, ErrInvalidName
	}

	project, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	provider, raw, err := s.hosting.AddDomain(ctx, project.VercelID, name)
	if err != nil {
		return nil, fmt.Errorf("provider add domain: %w", err)
	}

	return s.repo.Create(ctx, &Domain{
		ProjectID:    project.ID,
		Name:         provider.Name,
		Verified:     provider.Verified,
		ResponseData: raw,
	})
}

func (s *Service) ListForProject(ctx context.Context, userID, projectID string) ([]Domain, error) {
	if _, err := s.projects.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListForProject(ctx, userID, projectID)
}

// Verify asks the provider to re-check the domain's DNS configuration. An
// unverified result is still a successful call; the caller reads the flag.
func (s *Service) Verify(ctx context.Context, userID, id string) (*Domain, error) {
	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.Get(ctx, userID, d.ProjectID)
	if err != nil {
		return nil, err
	}

	provider, raw, err := s.hosting.VerifyDomain(ctx, project.VercelID, d.Name)
	if err != nil {
		return nil, fmt.Errorf("provider verify domain: %w", err)
	}

	if err := s.repo.SetVerified(ctx, d.ID, provider.Verified, raw); err != nil {
		return nil, err
	}
	d.Verified = provider.Verified
	return d, nil
}

// Assign points the domain at a specific deployment. The deployment must
// belong to the same project as the domain; nothing changes otherwise.
func (s *Service) Assign(ctx context.Context, userID, id, deploymentID string) (*Domain, error) {
	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	dep, err := s.deployments.Get(ctx, userID, deploymentID)
	if err != nil {
		return nil, err
	}
	if dep.ProjectID != d.ProjectID {
		return nil, ErrProjectMismatch
	}
	project, err := s.projects.Get(ctx, userID, d.ProjectID)
	if err != nil {
		return nil, err
	}

	_, raw, err := s.hosting.AssignDomain(ctx, project.VercelID, d.Name, dep.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("provider assign domain: %w", err)
	}

	if err := s.repo.SetDeployment(ctx, d.ID, dep.ID, raw); err != nil {
		return nil, err
	}
	d.DeploymentID = &dep.ID
	return d, nil
}

// RemoveResult reports the two independent halves of a domain removal.
type RemoveResult struct {
	LocalDeleted    bool `json:"local_deleted"`
	ProviderDeleted bool `json:"provider_deleted"`
}

// Remove detaches the domain from the provider best-effort, then always
// removes the local row.
func (s *Service) Remove(ctx context.Context, userID, id string) (*RemoveResult, error) {
	logger := logging.NewLogger(ctx)

	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	res := &RemoveResult{}
	if s.hosting.Configured() {
		project, err := s.projects.Get(ctx, userID, d.ProjectID)
		if err == nil {
			if err := s.hosting.RemoveDomain(ctx, project.VercelID, d.Name); err != nil {
				logger.LogWarnf("remove_domain", "provider delete failed for %s: %v", d.Name, err)
			} else {
				res.ProviderDeleted = true
			}
		}
	}

	res.LocalDeleted, err = s.repo.Delete(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return res, nil
}
