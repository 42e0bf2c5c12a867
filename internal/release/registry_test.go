package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/layergen/layergen/internal/config"
)

func newTestRegistry(t *testing.T, handler http.Handler) (Registry, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	reg := NewGitHubRegistry(config.Registry{
		Owner:   "acme",
		Repo:    "layergen",
		APIBase: srv.URL,
	}, "test-token")
	return reg, srv
}

func TestRegistryExists(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"published", http.StatusOK, true, false},
		{"free", http.StatusNotFound, false, false},
		{"server error", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/repos/acme/layergen/releases/tags/v1.3.0" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("Authorization = %q", got)
				}
				w.WriteHeader(tt.status)
			}))

			got, err := reg.Exists(context.Background(), "v1.3.0")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Exists: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layergen_1.3.0.tar.gz")
	if err := os.WriteFile(path, []byte("gzip-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegistryPublish(t *testing.T) {
	var createdBody createReleaseRequest
	var uploadedName string

	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("POST /repos/acme/layergen/releases", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&createdBody); err != nil {
			t.Errorf("decode create request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": 7, "upload_url": %q}`, srvURL+"/upload/7/assets{?name,label}")
	})
	mux.HandleFunc("POST /upload/7/assets", func(w http.ResponseWriter, r *http.Request) {
		uploadedName = r.URL.Query().Get("name")
		if got := r.Header.Get("Content-Type"); got != "application/gzip" {
			t.Errorf("upload Content-Type = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	})

	reg, srv := newTestRegistry(t, mux)
	srvURL = srv.URL

	err := reg.Publish(context.Background(), Release{
		Tag:      "v1.3.0",
		Name:     "Release v1.3.0",
		Body:     "## Release v1.3.0\n",
		Artifact: testArtifact(t),
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if createdBody.TagName != "v1.3.0" || createdBody.Name != "Release v1.3.0" {
		t.Errorf("create request = %+v", createdBody)
	}
	if createdBody.Draft || createdBody.Prerelease {
		t.Errorf("release must be non-draft and non-prerelease: %+v", createdBody)
	}
	if uploadedName != "layergen_1.3.0.tar.gz" {
		t.Errorf("uploaded asset name = %q", uploadedName)
	}
}

func TestRegistryPublish_TagTakenIsDuplicate(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed", "errors": [{"code": "already_exists"}]}`)
	}))

	err := reg.Publish(context.Background(), Release{
		Tag:      "v1.3.0",
		Name:     "Release v1.3.0",
		Artifact: testArtifact(t),
	})
	if !errors.Is(err, ErrDuplicateVersion) {
		t.Errorf("Publish = %v, want ErrDuplicateVersion", err)
	}
}

func TestRegistryPublish_ServerError(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := reg.Publish(context.Background(), Release{
		Tag:      "v1.3.0",
		Artifact: testArtifact(t),
	})
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("Publish = %v, want ErrPublishFailed", err)
	}
}
