package app_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/proper/internal/adapters/config"
	"go.trai.ch/proper/internal/adapters/lockfile"
	"go.trai.ch/proper/internal/adapters/telemetry"
	"go.trai.ch/proper/internal/app"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/proper/internal/core/ports/mocks"
	"go.trai.ch/proper/internal/engine/installer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const projectManifest = `{
    "version": "1.0.0",
    "summary": "demo",
    "dependencies": {
        "elm-lang/core": "1.0.0 <= v < 2.0.0",
        "elm-lang/html": null
    },
    "elm-version": "0.18.0 <= v < 0.19.0"
}
`

type fixture struct {
	root         string
	ctrl         *gomock.Controller
	materializer *mocks.MockMaterializer
	logger       *mocks.MockLogger
	app          *app.App

	mu    sync.Mutex
	repos map[string]*mocks.MockRepository
}

func newFixture(t *testing.T, manifest string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		root:         t.TempDir(),
		ctrl:         ctrl,
		materializer: mocks.NewMockMaterializer(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
		repos:        make(map[string]*mocks.MockRepository),
	}
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(f.root, domain.ManifestFileName), []byte(manifest), domain.FilePerm))
	}

	f.logger.EXPECT().SetVerbose(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	provider := mocks.NewMockRepositoryProvider(ctrl)
	provider.EXPECT().Open(gomock.Any(), gomock.Any()).DoAndReturn(
		func(decl domain.DependencyDeclaration, opts domain.CloneOptions) (ports.Repository, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			assert.Equal(t, filepath.Join(f.root, domain.DefaultWorkDir, domain.PackagesDirName, decl.Name, domain.CloneDirName), opts.Path)
			repo, ok := f.repos[decl.Name]
			if !ok {
				t.Errorf("unexpected open of %s", decl.Name)
				return nil, zerr.Wrap(domain.ErrSourceUnavailable, "unknown repository")
			}
			return repo, nil
		},
	).AnyTimes()

	home := t.TempDir()
	settings := &config.FileSettingsLoader{
		Filename: domain.SettingsFileName,
		HomeDir:  func() (string, error) { return home, nil },
	}
	inst := installer.NewInstaller(provider, f.materializer, telemetry.NewNoOp(), f.logger)
	f.app = app.New(settings, config.NewManifestStore(), lockfile.NewStore(), inst, f.materializer, f.logger).
		WithRoot(f.root)
	return f
}

func (f *fixture) repo(name string, tags ...string) *mocks.MockRepository {
	repo := mocks.NewMockRepository(f.ctrl)
	repo.EXPECT().EnsureCloned(gomock.Any()).Return(nil)
	repo.EXPECT().SyncDefaultBranch(gomock.Any()).Return(nil)
	repo.EXPECT().ListTags(gomock.Any()).Return(tags, nil)
	repo.EXPECT().WorkingTree().Return("/clones/" + name).AnyTimes()
	f.repos[name] = repo
	return repo
}

func (f *fixture) materializeAll() {
	f.materializer.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Layout, req domain.MaterializeRequest) (domain.MaterializedVersion, error) {
			return domain.MaterializedVersion{Name: req.Name, Version: req.Version}, nil
		},
	).AnyTimes()
}

func (f *fixture) layout() domain.Layout {
	return domain.Layout{Root: f.root, WorkDir: domain.DefaultWorkDir}
}

func (f *fixture) manifest(t *testing.T) *domain.Manifest {
	t.Helper()
	m, err := config.NewManifestStore().Load(f.layout().ManifestPath())
	require.NoError(t, err)
	return m
}

func (f *fixture) lock(t *testing.T) domain.Lockfile {
	t.Helper()
	lock, err := lockfile.NewStore().Load(f.layout())
	require.NoError(t, err)
	return lock
}

func TestApp_Install_PinsUnconstrainedDependency(t *testing.T) {
	f := newFixture(t, projectManifest)
	f.repo("elm-lang/core", "0.9.0", "1.0.0", "1.5.0", "2.0.0").EXPECT().Checkout(gomock.Any(), "1.5.0").Return(nil)
	f.repo("elm-lang/html", "1.0.0", "2.3.1").EXPECT().Checkout(gomock.Any(), "2.3.1").Return(nil)
	f.materializeAll()

	require.NoError(t, f.app.Install(context.Background(), nil, app.InstallOptions{Verbose: true}))

	m := f.manifest(t)
	decl, ok := m.Declaration("elm-lang/html")
	require.True(t, ok)
	assert.Equal(t, "2.3.1 <= v <= 2.3.1", decl.Range)
	decl, ok = m.Declaration("elm-lang/core")
	require.True(t, ok)
	assert.Equal(t, "1.0.0 <= v < 2.0.0", decl.Range)

	written, err := os.ReadFile(f.layout().ManifestPath())
	require.NoError(t, err)
	assert.Contains(t, string(written), `"summary": "demo"`)

	assert.Equal(t, map[string]string{
		"elm-lang/core": "1.5.0",
		"elm-lang/html": "2.3.1",
	}, f.lock(t).Versions)
}

func TestApp_Install_CheckoutFailureWritesNothing(t *testing.T) {
	f := newFixture(t, projectManifest)
	f.repo("elm-lang/core", "1.0.0").EXPECT().Checkout(gomock.Any(), "1.0.0").
		Return(zerr.Wrap(domain.ErrCheckout, "unknown revision"))
	f.repo("elm-lang/html", "2.3.1").EXPECT().Checkout(gomock.Any(), "2.3.1").Return(nil)
	f.materializeAll()

	var reported []*domain.StageError
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		var stageErr *domain.StageError
		if assert.ErrorAs(t, err, &stageErr) {
			reported = append(reported, stageErr)
		}
	}).Times(1)

	err := f.app.Install(context.Background(), nil, app.InstallOptions{})

	require.ErrorIs(t, err, domain.ErrInstallFailed)
	require.ErrorIs(t, err, domain.ErrCheckout)
	require.Len(t, reported, 1)
	assert.Equal(t, "elm-lang/core", reported[0].Package)
	assert.Equal(t, domain.StageCheckedOut, reported[0].Stage)

	_, statErr := os.Stat(f.layout().LockPath())
	assert.True(t, os.IsNotExist(statErr), "lock must not be written")
	written, readErr := os.ReadFile(f.layout().ManifestPath())
	require.NoError(t, readErr)
	assert.Equal(t, projectManifest, string(written))
}

func TestApp_Install_NoManifest(t *testing.T) {
	f := newFixture(t, "")

	err := f.app.Install(context.Background(), nil, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrNoManifest)
}

func TestApp_Install_RequestedPackages(t *testing.T) {
	f := newFixture(t, projectManifest)
	require.NoError(t, lockfile.NewStore().Write(f.layout(), []byte(projectManifest), domain.Lockfile{
		Versions: map[string]string{
			"elm-lang/core": "1.0.0",
			"removed/pkg":   "0.1.0",
		},
	}))

	svg := f.repo("elm-lang/svg", "2.0.0", "2.1.0")
	svg.EXPECT().Checkout(gomock.Any(), "2.1.0").Return(nil)
	f.materializeAll()

	err := f.app.Install(context.Background(), []string{
		"https://github.com/elm-lang/svg",
		"elm-lang/svg",
	}, app.InstallOptions{})
	require.NoError(t, err)

	decl, ok := f.manifest(t).Declaration("elm-lang/svg")
	require.True(t, ok)
	assert.Equal(t, "2.1.0 <= v <= 2.1.0", decl.Range)

	assert.Equal(t, map[string]string{
		"elm-lang/core": "1.0.0",
		"elm-lang/svg":  "2.1.0",
	}, f.lock(t).Versions)
}

func TestApp_Install_InvalidPackage(t *testing.T) {
	f := newFixture(t, projectManifest)

	err := f.app.Install(context.Background(), []string{"not-a-package"}, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidPackage)
}

func TestApp_Install_RejectsEscapingPackageNames(t *testing.T) {
	f := newFixture(t, `{"dependencies": {"a/..": null}}`)

	err := f.app.Install(context.Background(), []string{"../.."}, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidPackage)

	err = f.app.Install(context.Background(), nil, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidPackage)

	_, statErr := os.Stat(filepath.Join(f.root, domain.DefaultWorkDir))
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestApp_Verify(t *testing.T) {
	f := newFixture(t, projectManifest)
	lock := domain.Lockfile{Versions: map[string]string{
		"elm-lang/core": "1.5.0",
		"elm-lang/html": "2.3.1",
	}}
	require.NoError(t, lockfile.NewStore().Write(f.layout(), []byte(projectManifest), lock))

	f.materializer.EXPECT().Verify(gomock.Any(), gomock.Any(), lock).Return(nil)
	require.NoError(t, f.app.Verify(context.Background()))
}

func TestApp_Verify_UnlockedDependency(t *testing.T) {
	f := newFixture(t, projectManifest)
	lock := domain.Lockfile{Versions: map[string]string{"elm-lang/core": "1.5.0"}}
	require.NoError(t, lockfile.NewStore().Write(f.layout(), []byte(projectManifest), lock))

	f.materializer.EXPECT().Verify(gomock.Any(), gomock.Any(), lock).Return(nil)

	err := f.app.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrVerifyFailed)
	assert.Contains(t, err.Error(), "dependency is not locked")
}
