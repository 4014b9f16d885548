package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"applydi-client/internal/config"
	"applydi-client/internal/testsupport/fakeapi"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainerWiresStorageAndLogs(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test", LogFilePath: filepath.Join(dir, "logs", "applydi.log.json"), ExportDir: dir},
		API:     config.APIConfig{BaseURL: "http://fakeapi.local"},
		Storage: config.StorageConfig{Path: filepath.Join(dir, "storage.json")},
	}
	backend := fakeapi.New()
	out := &bytes.Buffer{}

	app, err := NewContainer(cfg, WithDoer(backend.Doer()), WithOutput(out))
	require.NoError(t, err)

	require.NoError(t, app.Session.SetCredential(backend.AddUser("alice", "pw")))
	backend.SeedAgent("alice", "Closer", "sales")
	agents, err := app.Agents.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, agents, 1)

	_, err = app.Agents.Create(context.Background(), "", "sales")
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Veuillez saisir un nom pour l'agent")

	require.NoError(t, app.Close(context.Background()))

	_, err = os.Stat(cfg.Storage.Path)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Dir(cfg.App.LogFilePath))
	assert.NoError(t, err)
}
