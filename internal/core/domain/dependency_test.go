package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/proper/internal/core/domain"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"elm-lang/core", "elm-lang/core"},
		{"https://github.com/elm-lang/core", "elm-lang/core"},
		{"https://github.com/elm-lang/core.git", "elm-lang/core"},
		{"https://gitlab.com/owner/repo/", "owner/repo"},
		{"  owner/repo  ", "owner/repo"},
		{"git@github.com:elm-lang/html.git", "elm-lang/html"},
		{"ssh://git@example.com/owner/repo.git", "owner/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PackageName(tt.input, domain.DefaultGitHost))
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	require.NoError(t, domain.ValidatePackageName("elm-lang/core"))

	invalid := []string{
		"", "core", "/core", "elm-lang/", "a/b/c", "git@host:a/b", "a/b:c",
		"../..", "a/..", "../b", "./b", "a/.", `..\a/b`, `a/..\..`,
	}
	for _, name := range invalid {
		err := domain.ValidatePackageName(name)
		require.ErrorIs(t, err, domain.ErrInvalidPackage, name)
	}
}

func TestSourceURL(t *testing.T) {
	assert.Equal(t, "https://github.com/elm-lang/core", domain.SourceURL("elm-lang/core", domain.DefaultGitHost))
	assert.Equal(t, "https://git.example.com/a/b", domain.SourceURL("a/b", "https://git.example.com"))
	assert.Equal(t, "https://gitlab.com/a/b", domain.SourceURL("https://gitlab.com/a/b", domain.DefaultGitHost))
	assert.Equal(t, "/srv/git/a/b", domain.SourceURL("/srv/git/a/b", domain.DefaultGitHost))
}

func TestManifest_Declare(t *testing.T) {
	m := &domain.Manifest{
		Dependencies: []domain.DependencyDeclaration{
			{Name: "a/one", Range: "1.0.0 <= v < 2.0.0"},
			{Name: "b/two"},
		},
	}

	m.Declare(domain.DependencyDeclaration{Name: "b/two", Range: "2.3.1 <= v <= 2.3.1"})
	m.Declare(domain.DependencyDeclaration{Name: "c/three"})

	assert.Equal(t, []string{"a/one", "b/two", "c/three"}, m.Names())

	decl, ok := m.Declaration("b/two")
	assert.True(t, ok)
	assert.Equal(t, "2.3.1 <= v <= 2.3.1", decl.Range)
	assert.False(t, decl.IsUnconstrained())

	decl, ok = m.Declaration("c/three")
	assert.True(t, ok)
	assert.True(t, decl.IsUnconstrained())

	_, ok = m.Declaration("missing/pkg")
	assert.False(t, ok)
}

func TestInstallReport_Succeeded(t *testing.T) {
	report := &domain.InstallReport{Results: []domain.Resolution{{Name: "a/one", Version: "1.0.0"}}}
	assert.True(t, report.Succeeded())

	report.Failures = append(report.Failures, domain.NewStageError("b/two", domain.StageCheckedOut, domain.ErrCheckout))
	assert.False(t, report.Succeeded())
}
