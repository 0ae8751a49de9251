package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

const (
	waitDelay = 5 * time.Second
	// killGrace is how long an interrupted command may take to exit before
	// its process group is killed.
	killGrace = 2 * time.Second
)

// monitoredCmd runs a command until it exits, the context is cancelled, or it
// has produced no output for longer than the inactivity timeout.
type monitoredCmd struct {
	cmd     *exec.Cmd
	timeout time.Duration
	stdout  *activityBuffer
	stderr  *activityBuffer
}

func newMonitoredCmd(cmd *exec.Cmd, timeout time.Duration) *monitoredCmd {
	stdout, stderr := &activityBuffer{}, &activityBuffer{}
	cmd.Stdout, cmd.Stderr = stdout, stderr
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	// Never block on a credential prompt.
	cmd.Env = append(cmd.Env, "GIT_TERMINAL_PROMPT=0")
	// Helpers spawned by git (git-remote-https) share the group and are
	// signalled with it.
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	return &monitoredCmd{
		cmd:     cmd,
		timeout: timeout,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// run waits for the command. The process is killed on cancellation or inactivity.
func (c *monitoredCmd) run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	started := time.Now()
	c.stdout.touch(started)
	c.stderr.touch(started)

	ticker := time.NewTicker(c.timeout / 4)
	defer ticker.Stop()

	if err := c.cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- c.cmd.Wait() }()

	for {
		select {
		case <-ticker.C:
			if c.idleSince(time.Now()) < c.timeout {
				continue
			}
			if err := c.terminate(done); err != nil {
				return err
			}
			return &timeoutError{timeout: c.timeout}
		case <-ctx.Done():
			if err := c.terminate(done); err != nil {
				return err
			}
			return ctx.Err()
		case err := <-done:
			return err
		}
	}
}

// terminate interrupts the command's process group and kills it if it is
// still running after killGrace. It returns once the command has been reaped.
func (c *monitoredCmd) terminate(done <-chan error) error {
	if err := interruptProcess(c.cmd); err != nil {
		return &killCmdError{err: err}
	}

	grace := time.NewTimer(killGrace)
	defer grace.Stop()
	select {
	case <-done:
		return nil
	case <-grace.C:
	}

	if err := killProcess(c.cmd); err != nil {
		return &killCmdError{err: err}
	}
	<-done
	return nil
}

func (c *monitoredCmd) idleSince(now time.Time) time.Duration {
	last := c.stdout.lastActivity()
	if errLast := c.stderr.lastActivity(); errLast.After(last) {
		last = errLast
	}
	return now.Sub(last)
}

// output runs the command and returns stdout, or stderr when it fails.
func (c *monitoredCmd) output(ctx context.Context) ([]byte, error) {
	if err := c.run(ctx); err != nil {
		return c.stderr.bytes(), err
	}
	return c.stdout.bytes(), nil
}

// activityBuffer records when it was last written to.
type activityBuffer struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	last time.Time
}

func (b *activityBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = time.Now()
	return b.buf.Write(p)
}

func (b *activityBuffer) touch(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = t
}

func (b *activityBuffer) lastActivity() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *activityBuffer) bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

type timeoutError struct {
	timeout time.Duration
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("command killed after %s of no activity", e.timeout)
}

type killCmdError struct {
	err error
}

func (e *killCmdError) Error() string {
	return fmt.Sprintf("error killing command: %s", e.err)
}

func (e *killCmdError) Unwrap() error {
	return e.err
}
