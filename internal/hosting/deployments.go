package hosting

import (
	"context"
	"encoding/json"
	"net/http"
)

// DeploymentFile is one entry of a deployment manifest. Data is base64 when
// Encoding says so.
type DeploymentFile struct {
	File     string `json:"file"`
	Data     string `json:"data"`
	Encoding string `json:"encoding,omitempty"`
}

type ProjectSettings struct {
	Framework       string `json:"framework"`
	BuildCommand    string `json:"buildCommand,omitempty"`
	OutputDirectory string `json:"outputDirectory,omitempty"`
}

type CreateDeploymentRequest struct {
	Name            string           `json:"name"`
	Project         string           `json:"project,omitempty"`
	Files           []DeploymentFile `json:"files"`
	Target          string           `json:"target,omitempty"`
	ProjectSettings ProjectSettings  `json:"projectSettings"`
}

type Deployment struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	ReadyState string `json:"readyState"`
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Framework string `json:"framework"`
}

// CreateProject creates a hosting-provider project.
func (c *Client) CreateProject(ctx context.Context, name, framework string) (*Project, json.RawMessage, error) {
	body := map[string]string{"name": name}
	if framework != "" {
		body["framework"] = framework
	}

	var p Project
	raw, err := c.do(ctx, nil, http.MethodPost, "/projects", body, &p)
	if err != nil {
		return nil, nil, err
	}
	return &p, raw, nil
}

// DeleteProject removes a provider project and everything under it.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	_, err := c.do(ctx, nil, http.MethodDelete, "/projects/"+projectID, nil, nil)
	return err
}

// CreateDeployment submits a file manifest for deployment.
func (c *Client) CreateDeployment(ctx context.Context, req CreateDeploymentRequest) (*Deployment, json.RawMessage, error) {
	var d Deployment
	raw, err := c.do(ctx, c.deployClient, http.MethodPost, "/deployments", req, &d)
	if err != nil {
		return nil, nil, err
	}
	return &d, raw, nil
}

// GetDeployment fetches the live state of a deployment.
func (c *Client) GetDeployment(ctx context.Context, deploymentID string) (*Deployment, json.RawMessage, error) {
	var d Deployment
	raw, err := c.do(ctx, nil, http.MethodGet, "/deployments/"+deploymentID, nil, &d)
	if err != nil {
		return nil, nil, err
	}
	return &d, raw, nil
}

// DeleteDeployment removes a deployment on the provider side.
func (c *Client) DeleteDeployment(ctx context.Context, deploymentID string) error {
	_, err := c.do(ctx, nil, http.MethodDelete, "/deployments/"+deploymentID, nil, nil)
	return err
}
