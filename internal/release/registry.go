package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/layergen/layergen/internal/config"
)

// TokenEnv is the environment variable carrying the publish credential.
const TokenEnv = "GITHUB_TOKEN"

// Release is one immutable release record to publish.
type Release struct {
	Tag      string // e.g. "v1.3.0"
	Name     string // e.g. "Release v1.3.0"
	Body     string // Markdown release notes.
	Artifact string // Path of the artifact to attach.
}

// Registry is the package registry and release/tag namespace. It is the
// pipeline's only shared mutable resource; Exists plus publish-time
// conflict detection enforce first-publish-wins for a version.
type Registry interface {
	// Exists reports whether a release with the tag is already published.
	Exists(ctx context.Context, tag string) (bool, error)

	// Publish creates the release record and uploads the artifact.
	// Publishing an existing tag fails with ErrDuplicateVersion.
	Publish(ctx context.Context, rel Release) error
}

// githubRegistry publishes to the GitHub Releases API.
type githubRegistry struct {
	apiBase string
	owner   string
	repo    string
	token   string
	client  *http.Client
}

// NewGitHubRegistry creates a Registry over the configured GitHub repository.
// The token may be empty; the pipeline checks the credential before publish.
func NewGitHubRegistry(cfg config.Registry, token string) Registry {
	return &githubRegistry{
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Exists queries the release-by-tag endpoint: 200 means published, 404 free.
func (g *githubRegistry) Exists(ctx context.Context, tag string) (bool, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", g.apiBase, g.owner, g.repo, tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("query release %s: %w", tag, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("query release %s: unexpected status %d", tag, resp.StatusCode)
	}
}

// createReleaseRequest is the POST /releases payload.
type createReleaseRequest struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// createReleaseResponse carries the hypermedia upload URL back.
type createReleaseResponse struct {
	ID        int64  `json:"id"`
	UploadURL string `json:"upload_url"`
}

// Publish creates the release record, then uploads the artifact asset.
func (g *githubRegistry) Publish(ctx context.Context, rel Release) error {
	payload, err := json.Marshal(createReleaseRequest{
		TagName: rel.Tag,
		Name:    rel.Name,
		Body:    rel.Body,
	})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrPublishFailed, err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases", g.apiBase, g.owner, g.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrPublishFailed, err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: create release: %v", ErrPublishFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 422 means the tag is taken: another run won the race for this version.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("%w: %s", ErrDuplicateVersion, rel.Tag)
	}
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: create release: status %d: %s", ErrPublishFailed, resp.StatusCode, body)
	}

	var created createReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrPublishFailed, err)
	}

	return g.uploadAsset(ctx, created.UploadURL, rel.Artifact)
}

// uploadAsset attaches the artifact to the created release.
func (g *githubRegistry) uploadAsset(ctx context.Context, uploadURL, artifact string) error {
	f, err := os.Open(artifact)
	if err != nil {
		return fmt.Errorf("%w: open artifact: %v", ErrPublishFailed, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat artifact: %v", ErrPublishFailed, err)
	}

	// The API returns a hypermedia URL: .../assets{?name,label}
	if i := strings.Index(uploadURL, "{"); i >= 0 {
		uploadURL = uploadURL[:i]
	}
	uploadURL += "?name=" + filepath.Base(artifact)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, f)
	if err != nil {
		return fmt.Errorf("%w: create upload request: %v", ErrPublishFailed, err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/gzip")
	req.ContentLength = info.Size()

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: upload asset: %v", ErrPublishFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: upload asset: status %d: %s", ErrPublishFailed, resp.StatusCode, body)
	}
	return nil
}

// setHeaders applies the common API headers.
func (g *githubRegistry) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "layergen-release")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}
