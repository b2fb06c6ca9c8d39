//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through a PTY since it exits quickly
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	assert.Contains(t, output, "Usage")
	for _, sub := range []string{"list", "mock-api", "version"} {
		assert.Contains(t, output, sub)
	}
	assert.Contains(t, output, "--config")
}

func TestListCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.StartMockAPI())

	out, err := tf.Run("list", "users", "--tab", "블럭회원", "--page", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "3 / 3 페이지 · 전체 23건")
	assert.Contains(t, out, "user57@example.com")

	out, err = tf.Run("list", "notices", "--search", "공지사항 1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "전체 4건")

	out, err = tf.Run("list", "coupons")
	require.Error(t, err)
	assert.Contains(t, out, "unknown entity")
}

func TestListCommandNeedsToken(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.StartMockAPI("--token", "secret"))

	out, err := tf.Run("list", "admins")
	require.Error(t, err, out)
	assert.Contains(t, out, "401")

	cmd := exec.Command(binPath, "--config", tf.ConfigPath(), "list", "admins")
	cmd.Env = append(tf.Env(), "BACKOFFICE_TOKEN=secret")
	cmd.Dir = tf.workspace
	b, err := cmd.CombinedOutput()
	require.NoError(t, err, string(b))
	assert.Contains(t, string(b), "root@example.com")
	assert.True(t, strings.Contains(string(b), "전체 2건"))
}
