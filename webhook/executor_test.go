package webhook

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "ip_blocker.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestExecuteSuccess(t *testing.T) {
	script := writeScript(t, `echo "blocked $2 via $1"`)
	e := NewScriptExecutor(script, 5*time.Second, zap.NewNop())

	ok, output := e.Execute(context.Background(), "block", "192.168.1.250")
	assert.True(t, ok)
	assert.Equal(t, "blocked 192.168.1.250 via block\n", output)
}

func TestExecuteOmitsIPWhenEmpty(t *testing.T) {
	script := writeScript(t, `echo "argc=$#"`)
	e := NewScriptExecutor(script, 5*time.Second, zap.NewNop())

	ok, output := e.Execute(context.Background(), "list", "")
	assert.True(t, ok)
	assert.Equal(t, "argc=1\n", output)
}

func TestExecuteFailureCapturesStderr(t *testing.T) {
	script := writeScript(t, `echo "iptables: rule not found" >&2; exit 2`)
	e := NewScriptExecutor(script, 5*time.Second, zap.NewNop())

	ok, output := e.Execute(context.Background(), "unblock", "10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, "iptables: rule not found", output)
}

func TestExecuteFailureWithoutStderrUsesExitError(t *testing.T) {
	script := writeScript(t, `exit 3`)
	e := NewScriptExecutor(script, 5*time.Second, zap.NewNop())

	ok, output := e.Execute(context.Background(), "status", "")
	assert.False(t, ok)
	assert.Contains(t, output, "exit status 3")
}

func TestExecuteTimeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)
	e := NewScriptExecutor(script, 200*time.Millisecond, zap.NewNop())

	start := time.Now()
	ok, output := e.Execute(context.Background(), "reload", "")
	assert.False(t, ok)
	assert.Equal(t, "Command timed out", output)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecuteMissingScript(t *testing.T) {
	e := NewScriptExecutor(filepath.Join(t.TempDir(), "missing.sh"), time.Second, zap.NewNop())

	ok, output := e.Execute(context.Background(), "block", "10.0.0.1")
	assert.False(t, ok)
	assert.NotEmpty(t, output)
}
