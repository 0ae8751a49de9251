package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/proper/internal/adapters/git"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=proper",
		"GIT_AUTHOR_EMAIL=proper@example.com",
		"GIT_COMMITTER_NAME=proper",
		"GIT_COMMITTER_EMAIL=proper@example.com",
		"GIT_CONFIG_NOSYSTEM=1",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "--quiet", "-m", "update "+name)
}

// newUpstream creates a repository with tags 1.0.0, 2.3.1 and nightly.
func newUpstream(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")

	commitFile(t, dir, "VERSION", "1.0.0")
	runGit(t, dir, "tag", "1.0.0")
	commitFile(t, dir, "VERSION", "2.3.1")
	runGit(t, dir, "tag", "-a", "2.3.1", "-m", "release 2.3.1")
	runGit(t, dir, "tag", "nightly")
	commitFile(t, dir, "VERSION", "unreleased")
	return dir
}

func openRepo(t *testing.T, source string) (ports.Repository, string) {
	t.Helper()
	clone := filepath.Join(t.TempDir(), "packages", "user", "project", domain.CloneDirName)
	repo, err := git.NewProvider().Open(
		domain.DependencyDeclaration{Name: "user/project", Source: source},
		domain.CloneOptions{Path: clone, Timeout: 30 * time.Second},
	)
	require.NoError(t, err)
	return repo, clone
}

func TestRepository_Lifecycle(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	upstream := newUpstream(t)
	repo, clone := openRepo(t, upstream)

	require.NoError(t, repo.EnsureCloned(ctx))
	assert.DirExists(t, filepath.Join(clone, ".git"))
	assert.Equal(t, clone, repo.WorkingTree())

	// Second call is a no-op.
	require.NoError(t, repo.EnsureCloned(ctx))

	require.NoError(t, repo.SyncDefaultBranch(ctx))

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.0.0", "2.3.1", "nightly"}, tags)

	require.NoError(t, repo.Checkout(ctx, "2.3.1"))
	content, err := os.ReadFile(filepath.Join(clone, "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "2.3.1", string(content))

	require.NoError(t, repo.Checkout(ctx, "1.0.0"))
	content, err = os.ReadFile(filepath.Join(clone, "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", string(content))
}

func TestRepository_SyncFastForwards(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	upstream := newUpstream(t)
	repo, clone := openRepo(t, upstream)

	require.NoError(t, repo.EnsureCloned(ctx))
	require.NoError(t, repo.SyncDefaultBranch(ctx))

	commitFile(t, upstream, "VERSION", "3.0.0")
	runGit(t, upstream, "tag", "3.0.0")

	// A fresh handle on the existing clone picks up the new tag after syncing.
	again, _ := openRepoAt(t, upstream, clone)
	require.NoError(t, again.EnsureCloned(ctx))
	require.NoError(t, again.SyncDefaultBranch(ctx))

	tags, err := again.ListTags(ctx)
	require.NoError(t, err)
	assert.Contains(t, tags, "3.0.0")

	content, err := os.ReadFile(filepath.Join(clone, "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", string(content))
}

func openRepoAt(t *testing.T, source, clone string) (ports.Repository, string) {
	t.Helper()
	repo, err := git.NewProvider().Open(
		domain.DependencyDeclaration{Name: "user/project", Source: source},
		domain.CloneOptions{Path: clone},
	)
	require.NoError(t, err)
	return repo, clone
}

func TestRepository_SyncRefusesDirtyTree(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo, clone := openRepo(t, newUpstream(t))

	require.NoError(t, repo.EnsureCloned(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(clone, "VERSION"), []byte("local edit"), domain.FilePerm))

	err := repo.SyncDefaultBranch(ctx)
	assert.ErrorIs(t, err, domain.ErrSync)
}

func TestRepository_CheckoutRequiresListedTag(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo, _ := openRepo(t, newUpstream(t))

	require.NoError(t, repo.EnsureCloned(ctx))

	err := repo.Checkout(ctx, "1.0.0")
	assert.ErrorIs(t, err, domain.ErrCheckout)

	_, err = repo.ListTags(ctx)
	require.NoError(t, err)

	err = repo.Checkout(ctx, "9.9.9")
	assert.ErrorIs(t, err, domain.ErrCheckout)
}

func TestRepository_SourceUnavailable(t *testing.T) {
	requireGit(t)
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	repo, clone := openRepo(t, missing)

	err := repo.EnsureCloned(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.NoDirExists(t, filepath.Join(clone, ".git"))
}

func TestRepository_CancelledClone(t *testing.T) {
	requireGit(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo, _ := openRepo(t, newUpstream(t))

	err := repo.EnsureCloned(ctx)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_Open_WrongRemote(t *testing.T) {
	requireGit(t)
	repo, clone := openRepo(t, newUpstream(t))
	require.NoError(t, repo.EnsureCloned(context.Background()))

	_, err := git.NewProvider().Open(
		domain.DependencyDeclaration{Name: "user/project", Source: newUpstream(t)},
		domain.CloneOptions{Path: clone},
	)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestRepository_NoTags(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	upstream := t.TempDir()
	runGit(t, upstream, "init", "--quiet")
	runGit(t, upstream, "symbolic-ref", "HEAD", "refs/heads/master")
	commitFile(t, upstream, "README", "untagged")

	repo, _ := openRepo(t, upstream)
	require.NoError(t, repo.EnsureCloned(ctx))
	require.NoError(t, repo.SyncDefaultBranch(ctx))

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
