// Package git implements repository handles on top of the git command line.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/vcs"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/zerr"
)

// Repository is a handle on one durable local clone.
// It is not safe for concurrent use; distinct handles are independent.
type Repository struct {
	repo          *vcs.GitRepo
	defaultBranch string
	timeout       time.Duration
	listed        map[string]struct{}
}

// EnsureCloned clones the remote unless the local clone already exists.
func (r *Repository) EnsureCloned(ctx context.Context) error {
	if r.repo.CheckLocal() {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(r.repo.LocalPath()), domain.DirPerm); err != nil {
		return localFailure(domain.ErrSourceUnavailable, "unable to create clone directory", err, nil)
	}

	cmd := exec.Command("git", "clone", "--quiet", "--", r.repo.Remote(), r.repo.LocalPath())
	out, err := newMonitoredCmd(cmd, r.timeout).output(ctx)
	if err != nil {
		return remoteFailure(domain.ErrSourceUnavailable, "unable to clone "+r.repo.Remote(), err, out)
	}
	return nil
}

// SyncDefaultBranch fetches the remote, checks out the default branch and
// fast-forwards it. Local modifications and diverged history are errors.
func (r *Repository) SyncDefaultBranch(ctx context.Context) error {
	if out, err := r.run(ctx, "fetch", "--tags", "--force", "--prune", r.repo.RemoteLocation); err != nil {
		return remoteFailure(domain.ErrSync, "unable to fetch "+r.repo.Remote(), err, out)
	}

	if r.repo.IsDirty() {
		return zerr.With(zerr.Wrap(domain.ErrSync, "working tree has local modifications"), "path", r.repo.LocalPath())
	}

	branch := r.remoteHead(ctx)
	if out, err := r.run(ctx, "checkout", "--quiet", branch); err != nil {
		return localFailure(domain.ErrSync, "unable to checkout "+branch, err, out)
	}
	upstream := r.repo.RemoteLocation + "/" + branch
	if out, err := r.run(ctx, "merge", "--ff-only", "--quiet", upstream); err != nil {
		return localFailure(domain.ErrSync, "unable to fast-forward "+branch+" to "+upstream, err, out)
	}
	return nil
}

// remoteHead returns the branch the remote's HEAD points at, or the configured
// default when the remote does not advertise one.
func (r *Repository) remoteHead(ctx context.Context) string {
	ref := "refs/remotes/" + r.repo.RemoteLocation + "/HEAD"
	out, err := r.run(ctx, "symbolic-ref", "--quiet", "--short", ref)
	if err != nil {
		return r.defaultBranch
	}
	branch := strings.TrimPrefix(strings.TrimSpace(string(out)), r.repo.RemoteLocation+"/")
	if branch == "" {
		return r.defaultBranch
	}
	return branch
}

// ListTags returns every tag of the local clone. An empty list is valid.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "tag", "--list")
	if err != nil {
		return nil, localFailure(domain.ErrTagList, "unable to list tags", err, out)
	}

	var tags []string
	listed := make(map[string]struct{})
	for line := range strings.SplitSeq(string(out), "\n") {
		tag := strings.TrimSpace(line)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		listed[tag] = struct{}{}
	}
	r.listed = listed
	return tags, nil
}

// Checkout detaches the working tree at a tag previously returned by ListTags.
func (r *Repository) Checkout(ctx context.Context, tag string) error {
	if _, ok := r.listed[tag]; !ok {
		return zerr.With(zerr.Wrap(domain.ErrCheckout, "tag is not listed"), "tag", tag)
	}

	if out, err := r.run(ctx, "checkout", "--quiet", "--detach", "refs/tags/"+tag); err != nil {
		return localFailure(domain.ErrCheckout, "unable to checkout "+tag, err, out)
	}
	return nil
}

// WorkingTree returns the path of the local clone.
func (r *Repository) WorkingTree() string {
	return r.repo.LocalPath()
}

func (r *Repository) run(ctx context.Context, args ...string) ([]byte, error) {
	return newMonitoredCmd(r.repo.CmdFromDir("git", args...), r.timeout).output(ctx)
}
