package config

// SettingsFile represents the structure of the .proper.yaml settings file.
type SettingsFile struct {
	GitHost       string `yaml:"gitHost"`
	WorkDir       string `yaml:"workDir"`
	RegistryRoot  string `yaml:"registryRoot"`
	DefaultBranch string `yaml:"defaultBranch"`
	Concurrency   int    `yaml:"concurrency"`
	GitTimeout    string `yaml:"gitTimeout"`
}

const (
	// dependenciesKey is the manifest field mapping package names to ranges.
	dependenciesKey = "dependencies"

	// toolVersionKey is the manifest field holding the tool version constraint.
	toolVersionKey = "elm-version"

	// manifestIndent matches the indentation of manifests written by the tool itself.
	manifestIndent = "    "
)
