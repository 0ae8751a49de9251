package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/proper/internal/core/domain"
)

func TestLockfile_Merge(t *testing.T) {
	manifest := &domain.Manifest{
		Dependencies: []domain.DependencyDeclaration{
			{Name: "a/one"},
			{Name: "b/two"},
		},
	}
	prior := domain.Lockfile{Versions: map[string]string{
		"a/one":     "1.0.0",
		"b/two":     "2.0.0",
		"gone/away": "0.1.0",
	}}

	merged := prior.Merge(manifest, []domain.Resolution{{Name: "b/two", Version: "2.1.0"}})

	assert.Equal(t, map[string]string{"a/one": "1.0.0", "b/two": "2.1.0"}, merged.Versions)
	assert.Equal(t, "2.0.0", prior.Versions["b/two"])
}

func TestLockfile_Clone(t *testing.T) {
	lock := domain.NewLockfile()
	lock.Versions["a/one"] = "1.0.0"

	clone := lock.Clone()
	clone.Versions["a/one"] = "2.0.0"

	assert.Equal(t, "1.0.0", lock.Versions["a/one"])
}
