package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  appVersion: 1.0.0
  port: :8080
  apiKey: secret
storage:
  bucket: configured-bucket
vertex:
  projectID: demo-project
  requestTimeout: 45s
jobs:
  maxUploadBytes: 1048576
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndParseConfig(t *testing.T) {
	v, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, "configured-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "demo-project", cfg.Vertex.ProjectID)
	assert.Equal(t, 45*time.Second, cfg.Vertex.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.Jobs.MaxUploadBytes)

	assert.Equal(t, "https://storage.googleapis.com", cfg.Storage.Endpoint)
	assert.Equal(t, "gs", cfg.Storage.URIScheme)
	assert.Equal(t, "media_studio_uploads/video_outputs/", cfg.Storage.VideoOutputsPrefix)
	assert.Equal(t, "/api/v1/media/files/", cfg.Storage.ProxyPath)
	assert.Equal(t, "us-central1", cfg.Vertex.Location)
	assert.Equal(t, "veo-2.0-generate-001", cfg.Vertex.VideoModel)
	assert.Equal(t, 30*time.Second, cfg.Jobs.RefreshLockTTL)
}

func TestParseConfig_RequiresBucket(t *testing.T) {
	v, err := LoadConfig(writeConfig(t, "server:\n  port: :8080\n"))
	require.NoError(t, err)
	_, err = ParseConfig(v)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
