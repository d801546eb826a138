package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
	"github.com/datashelf/shelf/internal/logging"
)

func writeDefinitions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefinitions(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  local:
    type: disk
    algorithm: sha256
    volume: /var/data
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
  archive:
    type: s3
    algorithm: md5
    bucket: archive
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	defs, err := LoadDefinitions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "local"}, defs.Names())

	raw, err := defs.Get("local")
	require.NoError(t, err)
	assert.Equal(t, "disk", raw["type"])
}

func TestLoadDefinitionsMissingFile(t *testing.T) {
	_, err := LoadDefinitions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	userErr, ok := err.(cfgerrors.UserError)
	require.True(t, ok)
	assert.Contains(t, userErr.Message, "not found")
}

func TestLoadDefinitionsEmpty(t *testing.T) {
	path := writeDefinitions(t, "storages: {}\n")
	_, err := LoadDefinitions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No storage definitions")
}

func TestGetUnknownStorageSuggestsNames(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  local:
    type: disk
    algorithm: sha256
    volume: /var/data
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)
	defs, err := LoadDefinitions(path)
	require.NoError(t, err)

	_, err = defs.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local")
}

func TestValidateCommand(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  good:
    type: disk
    algorithm: sha256
    volume: /var/data
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
  bad:
    type: s3
    algorithm: md5
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	opts := &Options{Logger: logging.New(false, true)}
	cmd := NewValidateCommand(opts)
	cmd.SetArgs([]string{"--file", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestResolveCommandDisk(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  local:
    type: disk
    algorithm: sha256
    volume: /var/data
    capacity: 1024
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	opts := &Options{Logger: logging.New(false, true)}
	cmd := NewResolveCommand(opts)
	var out bytes.Buffer
	cmd.SetArgs([]string{"--file", path, "--name", "local"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "volume: /var/data")
	assert.Contains(t, out.String(), "capacity: 1024")
}

func TestResolveCommandS3NeverPrintsKeys(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  archive:
    type: s3
    algorithm: md5
    bucket: archive
    access_key: AKIAEXAMPLE
    secret_key: topsecretvalue
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	opts := &Options{Logger: logging.New(false, true)}
	cmd := NewResolveCommand(opts)
	var out bytes.Buffer
	cmd.SetArgs([]string{"--file", path, "--name", "archive"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "credentials: static")
	assert.NotContains(t, out.String(), "AKIAEXAMPLE")
	assert.NotContains(t, out.String(), "topsecretvalue")
}

func TestResolveCommandS3ChecksClient(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  archive:
    type: s3
    algorithm: md5
    bucket: archive
    access_key: AKIAEXAMPLE
    secret_key: topsecretvalue
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	opts := &Options{Logger: logging.New(false, true)}
	cmd := NewResolveCommand(opts)
	var out bytes.Buffer
	cmd.SetArgs([]string{"--file", path, "--name", "archive", "--check-client"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "client:   ok")
}

func TestResolveCommandJSONOmitsSecrets(t *testing.T) {
	path := writeDefinitions(t, `
storages:
  remote:
    type: remote_disk
    algorithm: sha1
    endpoint: https://disk.example.com
    folder: backups
    credentials: tok-12345
    read_permission: files:read
    write_permission: files:write
    max_file_size: 1048576
`)

	opts := &Options{Logger: logging.New(false, true)}
	cmd := NewResolveCommand(opts)
	var out bytes.Buffer
	cmd.SetArgs([]string{"--file", path, "--name", "remote", "--json"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"@type": "RemoteDiskStorage"`)
	assert.NotContains(t, out.String(), "tok-12345")
	assert.NotContains(t, out.String(), "credentials")
}
