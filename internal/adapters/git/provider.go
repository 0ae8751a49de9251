package git

import (
	"errors"

	"github.com/Masterminds/vcs"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider implements ports.RepositoryProvider for git remotes.
type Provider struct{}

// NewProvider creates a new git repository provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Open binds a handle to decl.Source and opts.Path. An existing clone must
// point at the same remote.
func (p *Provider) Open(decl domain.DependencyDeclaration, opts domain.CloneOptions) (ports.Repository, error) {
	repo, err := vcs.NewGitRepo(decl.Source, opts.Path)
	if err != nil {
		reason := "unable to open local clone"
		if errors.Is(err, vcs.ErrWrongRemote) {
			reason = "local clone points at a different remote"
		}
		err = zerr.With(zerr.Wrap(domain.ErrSourceUnavailable, reason+": "+err.Error()), "source", decl.Source)
		return nil, zerr.With(err, "path", opts.Path)
	}

	branch := opts.DefaultBranch
	if branch == "" {
		branch = domain.DefaultBranch
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultGitTimeout
	}

	return &Repository{
		repo:          repo,
		defaultBranch: branch,
		timeout:       timeout,
	}, nil
}
