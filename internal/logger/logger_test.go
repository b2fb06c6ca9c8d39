package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "backoffice.log")

	log, err := Setup(Options{Path: path, Level: "debug"})
	require.NoError(t, err)
	log.Info("list loaded", "entity", "users", "total", 23)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"list loaded"`)
	assert.Contains(t, string(data), `"entity":"users"`)
}

func TestSetupWithoutPathIsNoop(t *testing.T) {
	log, err := Setup(Options{})
	require.NoError(t, err)
	assert.NotNil(t, log)
	log.Info("dropped")
}

func TestFromContextPrefersContextLogger(t *testing.T) {
	custom := logr.Discard().WithName("custom")
	ctx := WithLogger(context.Background(), &custom)

	assert.Same(t, &custom, FromContext(ctx))
	assert.Same(t, ctx, WithLogger(ctx, &custom))
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	_, err := Setup(Options{})
	require.NoError(t, err)
	assert.Same(t, Global(), FromContext(context.Background()))
}
