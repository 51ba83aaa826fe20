package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
storage:
  provider: gcs
  bucket: order-inbox
  input_prefix: incoming/
  output_prefix: rendered/
  processed_prefix: done/
  failed_prefix: errors/
  reports_prefix: workbooks/
worker:
  polling_interval_seconds: 30
  max_concurrency: 8
  disable_validation_reports: true
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gcs", cfg.Storage.Provider)
	assert.Equal(t, "order-inbox", cfg.Storage.Bucket)
	assert.Equal(t, "incoming/", cfg.Storage.InputPrefix)
	assert.Equal(t, "rendered/", cfg.Storage.OutputPrefix)
	assert.Equal(t, "done/", cfg.Storage.ProcessedPrefix)
	assert.Equal(t, "errors/", cfg.Storage.FailedPrefix)
	assert.Equal(t, "workbooks/", cfg.Storage.ReportsPrefix)
	assert.Equal(t, 30, cfg.Worker.PollingIntervalSeconds)
	assert.Equal(t, 8, cfg.Worker.MaxConcurrency)
	assert.True(t, cfg.Worker.DisableValidationReports)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
storage:
  provider: local
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "./data", cfg.Storage.RootDir)
	assert.Equal(t, "input/", cfg.Storage.InputPrefix)
	assert.Equal(t, "output/", cfg.Storage.OutputPrefix)
	assert.Equal(t, "processed/", cfg.Storage.ProcessedPrefix)
	assert.Equal(t, "failed/", cfg.Storage.FailedPrefix)
	assert.Equal(t, "reports/", cfg.Storage.ReportsPrefix)
	assert.Equal(t, 5, cfg.Worker.PollingIntervalSeconds)
	assert.Equal(t, 4, cfg.Worker.MaxConcurrency)
	assert.False(t, cfg.Worker.DisableValidationReports)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := writeConfig(t, "storage: [not: a, mapping")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_UnknownProviderRejected(t *testing.T) {
	path := writeConfig(t, `
storage:
  provider: s3
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage provider")
}

func TestLoad_GCSRequiresBucket(t *testing.T) {
	t.Setenv("GCS_BUCKET", "")

	path := writeConfig(t, `
storage:
  provider: gcs
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.bucket")
}

func TestLoad_GCSBucketFromEnvironment(t *testing.T) {
	t.Setenv("GCS_BUCKET", "env-bucket")

	path := writeConfig(t, `
storage:
  provider: gcs
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-bucket", cfg.Storage.Bucket)
}

func TestLoad_PrefixesMustEndWithSlash(t *testing.T) {
	path := writeConfig(t, `
storage:
  input_prefix: input
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must end with '/'")
}

func TestLoad_WorkerBoundsValidated(t *testing.T) {
	path := writeConfig(t, `
worker:
  polling_interval_seconds: -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polling_interval_seconds")

	path = writeConfig(t, `
worker:
  max_concurrency: -2
`)
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrency")
}
