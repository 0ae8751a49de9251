// Package app implements the application layer for proper.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/proper/internal/engine/installer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settings     ports.SettingsLoader
	manifests    ports.ManifestStore
	locks        ports.LockStore
	installer    *installer.Installer
	materializer ports.Materializer
	logger       ports.Logger
	root         string
}

// InstallOptions configures an install run.
type InstallOptions struct {
	// Verbose enables per-dependency progress output.
	Verbose bool
}

// New creates a new App instance rooted at the current directory.
func New(
	settings ports.SettingsLoader,
	manifests ports.ManifestStore,
	locks ports.LockStore,
	inst *installer.Installer,
	materializer ports.Materializer,
	logger ports.Logger,
) *App {
	return &App{
		settings:     settings,
		manifests:    manifests,
		locks:        locks,
		installer:    inst,
		materializer: materializer,
		logger:       logger,
		root:         ".",
	}
}

// WithRoot sets the project directory.
func (a *App) WithRoot(root string) *App {
	a.root = root
	return a
}

// Install resolves the requested packages, or every declared dependency when
// packages is empty, and rewrites the manifest and lock once all of them are
// installed. Nothing is written if any dependency fails.
func (a *App) Install(ctx context.Context, packages []string, opts InstallOptions) error {
	a.logger.SetVerbose(opts.Verbose)

	settings, err := a.settings.Load(a.root)
	if err != nil {
		return err
	}
	layout := settings.Layout(a.root)

	manifest, err := a.manifests.Load(layout.ManifestPath())
	if err != nil {
		return err
	}
	for i := range manifest.Dependencies {
		manifest.Dependencies[i].Source = domain.SourceURL(manifest.Dependencies[i].Name, settings.GitHost)
	}

	requested, err := a.requested(manifest, packages, settings.GitHost)
	if err != nil {
		return err
	}
	if len(requested) == 0 {
		a.logger.Info("no dependencies to install")
	}

	report := a.installer.Run(ctx, installer.Request{
		Layout:       layout,
		Settings:     settings,
		ToolVersion:  manifest.ToolVersion,
		Dependencies: requested,
	})

	if !report.Succeeded() {
		errs := make([]error, 0, len(report.Failures)+1)
		errs = append(errs, zerr.With(
			zerr.Wrap(domain.ErrInstallFailed, fmt.Sprintf("%d of %d dependencies failed", len(report.Failures), len(requested))),
			"failed", failedNames(report),
		))
		for _, failure := range report.Failures {
			a.logger.Error(failure)
			errs = append(errs, failure)
		}
		return errors.Join(errs...)
	}

	for _, res := range report.Results {
		if res.PinnedRange != "" {
			manifest.Declare(domain.DependencyDeclaration{Name: res.Name, Range: res.PinnedRange})
			a.logger.Debug(fmt.Sprintf("pinned %s to %q", res.Name, res.PinnedRange))
		}
	}

	encoded, err := a.manifests.Encode(manifest)
	if err != nil {
		return err
	}

	prior, err := a.locks.Load(layout)
	if err != nil {
		return err
	}
	lock := prior.Merge(manifest, report.Results)

	if err := a.locks.Write(layout, encoded, lock); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("installed %d dependencies", len(report.Results)))
	return nil
}

// requested maps package identifiers to declarations. Identifiers that are
// not yet declared are added to the manifest as unconstrained.
func (a *App) requested(manifest *domain.Manifest, packages []string, gitHost string) ([]domain.DependencyDeclaration, error) {
	if len(packages) == 0 {
		return slices.Clone(manifest.Dependencies), nil
	}

	seen := make(map[string]struct{}, len(packages))
	out := make([]domain.DependencyDeclaration, 0, len(packages))
	for _, pkg := range packages {
		name := domain.PackageName(pkg, gitHost)
		if err := domain.ValidatePackageName(name); err != nil {
			return nil, zerr.With(err, "argument", pkg)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		decl, ok := manifest.Declaration(name)
		if !ok {
			decl = domain.DependencyDeclaration{Name: name}
			manifest.Declare(decl)
			a.logger.Debug(fmt.Sprintf("adding %s to %s", name, domain.ManifestFileName))
		}
		decl.Source = domain.SourceURL(pkg, gitHost)
		out = append(out, decl)
	}
	return out, nil
}

// Verify checks that every declared dependency is locked and that every
// locked version has an intact materialized slot.
func (a *App) Verify(ctx context.Context) error {
	settings, err := a.settings.Load(a.root)
	if err != nil {
		return err
	}
	layout := settings.Layout(a.root)

	manifest, err := a.manifests.Load(layout.ManifestPath())
	if err != nil {
		return err
	}
	lock, err := a.locks.Load(layout)
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range manifest.Names() {
		if _, ok := lock.Versions[name]; !ok {
			errs = append(errs, zerr.With(zerr.Wrap(domain.ErrVerifyFailed, "dependency is not locked"), "package", name))
		}
	}
	if err := a.materializer.Verify(ctx, layout, lock); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("verified %d dependencies", len(lock.Versions)))
	return nil
}

func failedNames(report *domain.InstallReport) []string {
	names := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		names = append(names, f.Package)
	}
	return names
}
