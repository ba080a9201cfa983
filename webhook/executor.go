package webhook

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Executor runs one blocker operation and reports (success, output). On
// failure the returned string carries the captured error text instead.
type Executor interface {
	Execute(ctx context.Context, action, ipAddress string) (bool, string)
}

// ScriptExecutor invokes the external IP-blocker script with the action (and
// target address, when present) as positional arguments. Success is decided
// solely by exit code zero.
type ScriptExecutor struct {
	scriptPath string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewScriptExecutor builds an executor for the script at scriptPath with a
// per-invocation timeout.
func NewScriptExecutor(scriptPath string, timeout time.Duration, logger *zap.Logger) *ScriptExecutor {
	return &ScriptExecutor{scriptPath: scriptPath, timeout: timeout, logger: logger}
}

// Execute runs the script and captures stdout and stderr separately: stdout
// is the success output, stderr the failure text.
func (e *ScriptExecutor) Execute(ctx context.Context, action, ipAddress string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := []string{action}
	if ipAddress != "" {
		args = append(args, ipAddress)
	}

	e.logger.Info("executing command",
		zap.String("script", e.scriptPath),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, e.scriptPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		e.logger.Error("command timed out", zap.Strings("args", args))
		return false, "Command timed out"
	}
	if err != nil {
		errText := strings.TrimRight(stderr.String(), "\n")
		if errText == "" {
			errText = err.Error()
		}
		e.logger.Error("command failed",
			zap.Strings("args", args),
			zap.String("stderr", errText))
		return false, errText
	}

	out := stdout.String()
	e.logger.Info("command successful", zap.String("stdout", out))
	return true, out
}

var _ Executor = (*ScriptExecutor)(nil)
