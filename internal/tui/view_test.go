//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_View(t *testing.T) {
	m := NewModel(nil)
	m.packages = []PackageState{
		{ID: "1", Name: "elm-lang/core", Status: statusCompleted},
		{ID: "2", Name: "elm-lang/html", Status: statusRunning},
		{ID: "3", Name: "elm-lang/svg", Status: statusFailed, Err: "no such tag"},
	}

	output := m.View()

	assert.Contains(t, output, "elm-lang/core")
	assert.Contains(t, output, "elm-lang/html")
	assert.Contains(t, output, "elm-lang/svg: no such tag")
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "1/3 installed, 1 failed")
}

func TestModel_View_KeepsNewestRows(t *testing.T) {
	m := NewModel(nil)
	m.height = 3
	m.packages = []PackageState{
		{ID: "1", Name: "a/one", Status: statusCompleted},
		{ID: "2", Name: "a/two", Status: statusCompleted},
		{ID: "3", Name: "a/three", Status: statusCompleted},
	}

	output := m.View()

	assert.NotContains(t, output, "a/one")
	assert.Contains(t, output, "a/two")
	assert.Contains(t, output, "a/three")
	assert.Equal(t, 3, strings.Count(output, "\n"))
}
