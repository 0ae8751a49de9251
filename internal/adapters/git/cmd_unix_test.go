//go:build !windows

package git

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitoredCmd_TimeoutKillsSpawnedHelpers(t *testing.T) {
	requireShell(t)

	// The background sleep ignores SIGINT and keeps stdout open, like a
	// transport helper outliving git.
	cmd := newMonitoredCmd(exec.Command("sh", "-c", "sleep 30 & sleep 30"), 200*time.Millisecond)
	start := time.Now()
	err := cmd.run(t.Context())

	var timeout *timeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Less(t, time.Since(start), killGrace+time.Second)
}
