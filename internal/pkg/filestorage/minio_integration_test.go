//go:build integration

package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

func TestMinIOStorage(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "RELEASE.2024-01-31T20-20-33Z",
		Cmd:        []string{"server", "/data"},
		Env: []string{
			"MINIO_ROOT_USER=minio",
			"MINIO_ROOT_PASSWORD=minio123",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		t.Fatalf("could not start minio: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })
	port := resource.GetPort("9000/tcp")

	if err := pool.Retry(func() error {
		resp, err := http.Get("http://localhost:" + port + "/minio/health/live")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("minio not ready: %d", resp.StatusCode)
		}
		return nil
	}); err != nil {
		t.Fatalf("minio not ready: %v", err)
	}

	ctx := context.Background()
	ms, err := NewMinIOStorage(ctx, MinIOConfig{
		Endpoint:     "http://localhost:" + port,
		AccessKey:    "minio",
		SecretKey:    "minio123",
		Bucket:       "coursenotes",
		CreateBucket: true,
	})
	if err != nil {
		t.Fatalf("NewMinIOStorage: %v", err)
	}

	content := []byte("%PDF-1.4 fake pdf body")
	info, err := ms.Save(ctx, newFileHeader(t, "slides.pdf", content), NotesSubPath)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info.MimeType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", info.MimeType)
	}

	rc, err := ms.Open(ctx, info.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || string(got) != string(content) {
		t.Fatalf("unexpected content %q (%v)", got, err)
	}

	if err := ms.Delete(ctx, info.Path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ms.Open(ctx, info.Path); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
