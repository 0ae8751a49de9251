package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/proper/internal/core/domain"
)

func TestRegistryKey(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
		ok         bool
	}{
		{"0.18.0 <= v < 0.19.0", "0.18.0", true},
		{"0.17.1 <= v < 0.18.0", "0.17.0", true},
		{"1.2", "1.2.0", true},
		{"", "", false},
		{"any", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			got, ok := domain.RegistryKey(tt.constraint)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout(t *testing.T) {
	layout := domain.DefaultSettings("/home/u").Layout("/proj")

	assert.Equal(t, "/proj/elm-package.json", layout.ManifestPath())
	assert.Equal(t, "/proj/elm-stuff/exact-dependencies.json", layout.LockPath())
	assert.Equal(t, "/proj/elm-stuff/packages/elm-lang/core/.cloned", layout.ClonePath("elm-lang/core"))
	assert.Equal(t, "/proj/elm-stuff/packages/elm-lang/core/1.0.0", layout.VersionPath("elm-lang/core", "1.0.0"))
	assert.Equal(t,
		"/home/u/.elm/0.18.0/package/elm-lang/core/1.0.0/elm-package.json",
		layout.RegistryEntryPath("0.18.0", "elm-lang/core", "1.0.0"),
	)
}
