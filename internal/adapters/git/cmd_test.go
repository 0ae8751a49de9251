package git

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestMonitoredCmd_Output(t *testing.T) {
	requireShell(t)

	cmd := newMonitoredCmd(exec.Command("sh", "-c", "echo foo; echo foo"), time.Second)
	out, err := cmd.output(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "foo\nfoo\n", string(out))
}

func TestMonitoredCmd_FailureReturnsStderr(t *testing.T) {
	requireShell(t)

	cmd := newMonitoredCmd(exec.Command("sh", "-c", "echo out; echo broken >&2; exit 3"), time.Second)
	out, err := cmd.output(context.Background())

	require.Error(t, err)
	assert.Equal(t, "broken\n", string(out))
}

func TestMonitoredCmd_InactivityTimeout(t *testing.T) {
	requireShell(t)

	cmd := newMonitoredCmd(exec.Command("sh", "-c", "sleep 5"), 200*time.Millisecond)
	start := time.Now()
	err := cmd.run(context.Background())

	var timeout *timeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestMonitoredCmd_Cancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newMonitoredCmd(exec.Command("sh", "-c", "echo never"), time.Second)
	err := cmd.run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, cmd.cmd.Process)
}

func TestMonitoredCmd_CancelledWhileRunning(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	cmd := newMonitoredCmd(exec.Command("sh", "-c", "sleep 5"), time.Minute)
	err := cmd.run(ctx)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "fatal: repository not found", lastLine("Cloning into 'x'...\nfatal: repository not found\n"))
	assert.Empty(t, lastLine(""))
}
