package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summoner.log")
	logger, err := New("debug", "json", []string{path})
	require.NoError(t, err)

	logger.Debug("essence spent")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"essence spent"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNewDefaults(t *testing.T) {
	logger, err := New("", "", nil)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("loud", "", nil)
	assert.Error(t, err)
}
