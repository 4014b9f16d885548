package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerGetLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log.json")
	l := NewIsolatedLogger(path)

	l.Info("Agents", "agents listed", map[string]interface{}{"count": 2})
	l.Warn("Query", "question rejected", nil)
	l.Error("Documents", "upload failed", map[string]interface{}{"error": "boom"})
	l.Debug("Query", "below file level", nil)
	require.NoError(t, l.Sync())

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "upload failed", all[0].Message)
	assert.Equal(t, "Documents", all[0].Module)
	assert.NotEmpty(t, all[0].Id)

	warns, err := l.GetLogs("WARN", 10, 0)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "question rejected", warns[0].Message)

	page, err := l.GetLogs("", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetLogsMissingFile(t *testing.T) {
	l := NewIsolatedLogger(filepath.Join(t.TempDir(), "none.json"))

	entries, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = NewNopLogger().GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
