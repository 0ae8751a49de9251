package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// DependencyDeclaration is one entry of the manifest's dependencies mapping.
type DependencyDeclaration struct {
	// Name is the package name in owner/repo form. Unique within a manifest.
	Name string

	// Source is the URL the package is cloned from.
	Source string

	// Range is the declared range expression. Empty means unconstrained: the
	// dependency is pinned to its newest tag on first resolution.
	Range string
}

// IsUnconstrained reports whether the declaration carries no range expression.
func (d DependencyDeclaration) IsUnconstrained() bool {
	return strings.TrimSpace(d.Range) == ""
}

// PackageName derives the owner/repo name from a URL or shorthand identifier.
func PackageName(identifier, gitHost string) string {
	name := strings.TrimSpace(identifier)
	name = strings.TrimPrefix(name, gitHost)
	for _, scheme := range []string{"https://", "http://", "ssh://", "git://"} {
		if rest, ok := strings.CutPrefix(name, scheme); ok {
			// Drop the host component.
			if _, path, found := strings.Cut(rest, "/"); found {
				name = path
			}
			break
		}
	}
	if rest, ok := strings.CutPrefix(name, "git@"); ok {
		if _, path, found := strings.Cut(rest, ":"); found {
			name = path
		}
	}
	name = strings.TrimSuffix(name, "/")
	return strings.TrimSuffix(name, ".git")
}

// ValidatePackageName checks that name has the owner/repo form. Both
// segments become directory names under the work dir and the registry, so
// dot segments and path separators are rejected.
func ValidatePackageName(name string) error {
	owner, repo, ok := strings.Cut(name, "/")
	if !ok || !validSegment(owner) || !validSegment(repo) || strings.Contains(owner, "@") {
		return zerr.With(zerr.Wrap(ErrInvalidPackage, "expected owner/repo"), "package", name)
	}
	return nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\:")
}

// SourceURL expands owner/repo shorthand into a clone URL. Identifiers that
// already carry a scheme, or point at a local path, are returned unchanged.
func SourceURL(identifier, gitHost string) string {
	id := strings.TrimSpace(identifier)
	if strings.Contains(id, "://") || strings.HasPrefix(id, "/") || strings.HasPrefix(id, "git@") {
		return id
	}
	return strings.TrimSuffix(gitHost, "/") + "/" + id
}

// Manifest is the project's dependency manifest.
type Manifest struct {
	// Path is the file the manifest was read from.
	Path string

	// ToolVersion is the raw tool version constraint of the project (e.g. "0.18.0 <= v < 0.19.0").
	ToolVersion string

	// Dependencies preserves the declaration order of the manifest.
	Dependencies []DependencyDeclaration

	// Raw holds the original document so unrelated fields survive a rewrite.
	Raw []byte
}

// Declaration looks up a dependency by name.
func (m *Manifest) Declaration(name string) (DependencyDeclaration, bool) {
	for _, d := range m.Dependencies {
		if d.Name == name {
			return d, true
		}
	}
	return DependencyDeclaration{}, false
}

// Declare adds a dependency or replaces the range of an existing one.
func (m *Manifest) Declare(decl DependencyDeclaration) {
	for i, d := range m.Dependencies {
		if d.Name == decl.Name {
			m.Dependencies[i].Range = decl.Range
			return
		}
	}
	m.Dependencies = append(m.Dependencies, decl)
}

// Names returns the declared dependency names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		names = append(names, d.Name)
	}
	return names
}

// Resolution is the outcome of one dependency's pipeline reaching Done.
type Resolution struct {
	// Name is the package name.
	Name string

	// Version is the exact tag that was checked out and materialized.
	Version string

	// Verified is false when Version is the lower-bound fallback of the selector.
	Verified bool

	// PinnedRange is set when the declaration was unconstrained and a pin was synthesized.
	PinnedRange string

	// Reused is true when the materialized slot already existed.
	Reused bool
}

// InstallReport aggregates every dependency's terminal state after the join.
type InstallReport struct {
	Results  []Resolution
	Failures []*StageError
}

// Succeeded reports whether every dependency reached Done.
func (r *InstallReport) Succeeded() bool {
	return len(r.Failures) == 0
}
