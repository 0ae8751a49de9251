// Package installer runs one install pipeline per declared dependency.
package installer

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Request describes one install run.
type Request struct {
	// Layout locates the work dir and the registry.
	Layout domain.Layout
	// Settings supply clone options and the concurrency limit.
	Settings domain.Settings
	// ToolVersion is the project's tool version constraint, used as the
	// registry key fallback for dependencies that do not declare one.
	ToolVersion string
	// Dependencies are installed in parallel; the report keeps their order.
	Dependencies []domain.DependencyDeclaration
}

// Installer drives every dependency from Declared to Done or Failed.
type Installer struct {
	repos        ports.RepositoryProvider
	materializer ports.Materializer
	telemetry    ports.Telemetry
	logger       ports.Logger

	mu     sync.RWMutex
	status map[string]domain.Stage
}

// NewInstaller creates a new Installer.
func NewInstaller(
	repos ports.RepositoryProvider,
	materializer ports.Materializer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Installer {
	return &Installer{
		repos:        repos,
		materializer: materializer,
		telemetry:    telemetry,
		logger:       logger,
		status:       make(map[string]domain.Stage),
	}
}

// Status returns the last stage a dependency reached in the current run.
func (i *Installer) Status(name string) domain.Stage {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if st, ok := i.status[name]; ok {
		return st
	}
	return domain.StageDeclared
}

func (i *Installer) setStatus(name string, st domain.Stage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status[name] = st
}

// Run installs every dependency and returns once all of them are terminal.
// A failing dependency never stops its siblings.
func (i *Installer) Run(ctx context.Context, req Request) *domain.InstallReport {
	i.mu.Lock()
	i.status = make(map[string]domain.Stage, len(req.Dependencies))
	for _, decl := range req.Dependencies {
		i.status[decl.Name] = domain.StageDeclared
	}
	i.mu.Unlock()

	results := make([]domain.Resolution, len(req.Dependencies))
	failures := make([]*domain.StageError, len(req.Dependencies))

	var g errgroup.Group
	if req.Settings.Concurrency > 0 {
		g.SetLimit(req.Settings.Concurrency)
	}
	for idx, decl := range req.Dependencies {
		g.Go(func() error {
			results[idx], failures[idx] = i.install(ctx, req, decl)
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.InstallReport{}
	for idx := range req.Dependencies {
		if failures[idx] != nil {
			report.Failures = append(report.Failures, failures[idx])
			continue
		}
		report.Results = append(report.Results, results[idx])
	}
	return report
}

func (i *Installer) install(
	ctx context.Context,
	req Request,
	decl domain.DependencyDeclaration,
) (domain.Resolution, *domain.StageError) {
	ctx, vertex := i.telemetry.Record(ctx, decl.Name)

	res, stageErr := i.pipeline(ctx, req, decl, vertex)
	if stageErr != nil {
		i.setStatus(decl.Name, domain.StageFailed)
		_, _ = fmt.Fprintln(vertex.Stderr(), stageErr.Error())
		vertex.Complete(stageErr)
		return domain.Resolution{}, stageErr
	}

	i.setStatus(decl.Name, domain.StageDone)
	if res.Reused {
		vertex.Cached()
	}
	vertex.Complete(nil)
	i.logger.Info(fmt.Sprintf("installed %s %s", res.Name, res.Version))
	return res, nil
}

//nolint:cyclop // Linear state machine, one branch per stage
func (i *Installer) pipeline(
	ctx context.Context,
	req Request,
	decl domain.DependencyDeclaration,
	vertex ports.Vertex,
) (domain.Resolution, *domain.StageError) {
	name := decl.Name
	out := vertex.Stdout()
	enter := func(st domain.Stage) {
		i.setStatus(name, st)
		i.logger.Debug(fmt.Sprintf("%s: %s", name, st))
		_, _ = fmt.Fprintln(out, st)
	}

	// Parse before touching the network so a bad constraint fails fast.
	var declared domain.RangeExpression
	if !decl.IsUnconstrained() {
		var err error
		declared, err = domain.ParseRange(decl.Range)
		if err != nil {
			return domain.Resolution{}, domain.NewStageError(name, domain.StageVersionResolved, err)
		}
	}

	enter(domain.StageCloning)
	repo, err := i.repos.Open(decl, domain.CloneOptions{
		Path:          req.Layout.ClonePath(name),
		DefaultBranch: req.Settings.DefaultBranch,
		Timeout:       req.Settings.GitTimeout,
	})
	if err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageCloning, err)
	}
	if err := repo.EnsureCloned(ctx); err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageCloning, err)
	}

	enter(domain.StageSyncing)
	if err := repo.SyncDefaultBranch(ctx); err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageSyncing, err)
	}

	tags, err := repo.ListTags(ctx)
	if err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageTagsListed, err)
	}
	enter(domain.StageTagsListed)

	res := domain.Resolution{Name: name}
	if decl.IsUnconstrained() {
		newest, ok := domain.MaxTag(tags)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrNoVersions, "no semantic version tags"), "source", decl.Source)
			return domain.Resolution{}, domain.NewStageError(name, domain.StageVersionResolved, err)
		}
		pinned, err := domain.PinnedRange(newest)
		if err != nil {
			return domain.Resolution{}, domain.NewStageError(name, domain.StageVersionResolved, err)
		}
		res.Version = newest
		res.Verified = true
		res.PinnedRange = pinned.String()
	} else {
		selection := domain.Select(declared, tags)
		res.Version = selection.Version
		res.Verified = selection.Verified
		if !selection.Verified {
			i.logger.Warn(fmt.Sprintf(
				"%s: no tag satisfies %q, falling back to lower bound %s",
				name, declared.String(), selection.Version,
			))
		}
	}
	enter(domain.StageVersionResolved)
	_, _ = fmt.Fprintln(out, "resolved", res.Version)

	if err := repo.Checkout(ctx, res.Version); err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageCheckedOut, err)
	}
	enter(domain.StageCheckedOut)

	mv, err := i.materializer.Materialize(ctx, req.Layout, domain.MaterializeRequest{
		Name:                name,
		Version:             res.Version,
		WorkingTree:         repo.WorkingTree(),
		FallbackToolVersion: req.ToolVersion,
	})
	if err != nil {
		return domain.Resolution{}, domain.NewStageError(name, domain.StageMaterialized, err)
	}
	enter(domain.StageMaterialized)
	res.Reused = mv.Reused

	return res, nil
}
