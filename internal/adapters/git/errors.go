package git

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/vcs"
)

// opError is a failed repository operation. errors.Is matches both the domain
// kind and the underlying vcs error or context error.
type opError struct {
	kind  error
	cause error
}

func (e *opError) Error() string {
	msg := e.kind.Error() + ": " + e.cause.Error()

	var remote *vcs.RemoteError
	var local *vcs.LocalError
	var out string
	switch {
	case errors.As(e.cause, &remote):
		out = remote.Out()
	case errors.As(e.cause, &local):
		out = local.Out()
	}
	if line := lastLine(out); line != "" {
		msg += " (" + line + ")"
	}
	return msg
}

func (e *opError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

func remoteFailure(kind error, msg string, err error, out []byte) error {
	if isContextErr(err) {
		return &opError{kind: kind, cause: err}
	}
	return &opError{kind: kind, cause: vcs.NewRemoteError(msg, err, string(out))}
}

func localFailure(kind error, msg string, err error, out []byte) error {
	if isContextErr(err) {
		return &opError{kind: kind, cause: err}
	}
	return &opError{kind: kind, cause: vcs.NewLocalError(msg, err, string(out))}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
