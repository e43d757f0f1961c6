// Package qiita provides the client for the host platform (metadata and
// artifact store) and a development server emulating the endpoints the
// client consumes.
package qiita

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/qiita-spots/qtp-diversity/internal/config"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// Error types for the qiita package
var (
	ErrNotFound = fmt.Errorf("not found")
	ErrStore    = fmt.Errorf("store error")
)

// ArtifactRecord is the host's view of an artifact: its type tag and the
// files that constitute it, grouped by role
type ArtifactRecord struct {
	Type  types.ArtifactType `json:"type"`
	Files types.FileGroup    `json:"files"`
}

// Client talks to the host platform REST API
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient creates a Client from the application configuration
func NewClient(cfg *config.Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Qiita.Timeout}
	if !cfg.Qiita.VerifyCert {
		// Development deployments run behind self-signed certificates
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.Qiita.URL, "/"),
		clientID:     cfg.Qiita.ClientID,
		clientSecret: cfg.Qiita.ClientSecret,
		httpClient:   httpClient,
	}
}

// NewClientForURL creates a Client for the given base URL with default
// transport settings
func NewClientForURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// get performs an authenticated GET and decodes the JSON response body
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.clientID != "" {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d for %s: %s", resp.StatusCode, path, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// PrepTemplateMetadata fetches the sample metadata of a preparation
// template
func (c *Client) PrepTemplateMetadata(ctx context.Context, id string) (types.SampleMetadata, error) {
	var payload struct {
		Data types.SampleMetadata `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/qiita_db/prep_template/%s/data/", id), &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// AnalysisMetadata fetches the derived sample metadata of an analysis
func (c *Client) AnalysisMetadata(ctx context.Context, id string) (types.SampleMetadata, error) {
	var metadata types.SampleMetadata
	if err := c.get(ctx, fmt.Sprintf("/qiita_db/analysis/%s/metadata/", id), &metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// Artifact fetches the artifact record for the given artifact id
func (c *Client) Artifact(ctx context.Context, id string) (*ArtifactRecord, error) {
	var record ArtifactRecord
	if err := c.get(ctx, fmt.Sprintf("/qiita_db/artifacts/%s/", id), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PatchArtifact performs an idempotent partial update of an artifact
// record. Store failures are reported as ErrStore so callers can
// downgrade them to soft errors.
func (c *Client) PatchArtifact(ctx context.Context, id, op, fieldPath, value string) error {
	form := url.Values{}
	form.Set("op", op)
	form.Set("path", fieldPath)
	form.Set("value", value)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+fmt.Sprintf("/qiita_db/artifacts/%s/", id),
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.clientID != "" {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: artifact %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status %d: %s", ErrStore, resp.StatusCode, body)
	}
	return nil
}
