package hosting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegenio/sitegen-backend/config"
)

func testClient(baseURL, teamID string) *Client {
	return NewClient(&config.HostingConfig{
		APIToken: "test-token",
		BaseURL:  baseURL,
		TeamID:   teamID,
	})
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient(&config.HostingConfig{BaseURL: "https://api.vercel.com"})

	assert.False(t, c.Configured())

	_, _, err := c.CreateProject(context.Background(), "site", "nextjs")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestClient_CreateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, "team_1", r.URL.Query().Get("teamId"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "my-site", body["name"])

		_, _ = w.Write([]byte(`{"id":"prj_123","name":"my-site","framework":"nextjs"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "team_1")

	p, raw, err := c.CreateProject(context.Background(), "my-site", "nextjs")
	require.NoError(t, err)
	assert.Equal(t, "prj_123", p.ID)
	assert.Contains(t, string(raw), "prj_123")
}

func TestClient_ProviderErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"message":"project already exists"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")

	_, _, err := c.CreateProject(context.Background(), "taken", "nextjs")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusConflict, pe.StatusCode)
	assert.Equal(t, "project already exists", pe.Message)
}

func TestClient_CreateDeployment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/deployments", r.URL.Path)

		var body CreateDeploymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "production", body.Target)
		assert.NotEmpty(t, body.Files)

		_, _ = w.Write([]byte(`{"id":"dpl_1","url":"my-site.vercel.app","readyState":"QUEUED"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")

	d, _, err := c.CreateDeployment(context.Background(), CreateDeploymentRequest{
		Name:    "my-site",
		Project: "prj_123",
		Files:   []DeploymentFile{{File: "package.json", Data: "e30=", Encoding: "base64"}},
		Target:  "production",
	})
	require.NoError(t, err)
	assert.Equal(t, "dpl_1", d.ID)
	assert.Equal(t, "QUEUED", d.ReadyState)
}

func TestClient_VerifyDomainPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/prj_123/domains/example.com/verify", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"example.com","verified":false}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")

	// an unverified domain is a successful call, not an error
	d, _, err := c.VerifyDomain(context.Background(), "prj_123", "example.com")
	require.NoError(t, err)
	assert.False(t, d.Verified)
}

func TestClient_AssignDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/projects/prj_123/domains/example.com", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dpl_1", body["deploymentId"])

		_, _ = w.Write([]byte(`{"name":"example.com","verified":true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")

	d, _, err := c.AssignDomain(context.Background(), "prj_123", "example.com", "dpl_1")
	require.NoError(t, err)
	assert.True(t, d.Verified)
}

func TestProviderMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"wrapped error", `{"error":{"message":"quota exceeded"}}`, "quota exceeded"},
		{"plain text", `service unavailable`, "service unavailable"},
		{"empty body", ``, "unknown provider error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, providerMessage([]byte(tt.raw)))
		})
	}
}
