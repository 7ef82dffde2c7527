package hosting

import (
	"context"
	"encoding/json"
	"net/http"
)

type Domain struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// AddDomain attaches a custom domain to a provider project.
func (c *Client) AddDomain(ctx context.Context, projectID, name string) (*Domain, json.RawMessage, error) {
	var d Domain
	raw, err := c.do(ctx, nil, http.MethodPost, "/projects/"+projectID+"/domains/"+name, nil, &d)
	if err != nil {
		return nil, nil, err
	}
	return &d, raw, nil
}

// VerifyDomain asks the provider to check the domain's DNS configuration.
// verified=false in the response means verification is pending, not failed.
func (c *Client) VerifyDomain(ctx context.Context, projectID, name string) (*Domain, json.RawMessage, error) {
	var d Domain
	raw, err := c.do(ctx, nil, http.MethodPost, "/projects/"+projectID+"/domains/"+name+"/verify", nil, &d)
	if err != nil {
		return nil, nil, err
	}
	return &d, raw, nil
}

// AssignDomain points a domain at a specific deployment of its project.
func (c *Client) AssignDomain(ctx context.Context, projectID, name, deploymentID string) (*Domain, json.RawMessage, error) {
	body := map[string]string{"deploymentId": deploymentID}

	var d Domain
	raw, err := c.do(ctx, nil, http.MethodPatch, "/projects/"+projectID+"/domains/"+name, body, &d)
	if err != nil {
		return nil, nil, err
	}
	return &d, raw, nil
}

// RemoveDomain detaches a domain from a provider project.
func (c *Client) RemoveDomain(ctx context.Context, projectID, name string) error {
	_, err := c.do(ctx, nil, http.MethodDelete, "/projects/"+projectID+"/domains/"+name, nil, nil)
	return err
}
