package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileSettingsLoader implements ports.SettingsLoader using a YAML file.
type FileSettingsLoader struct {
	Filename string
	// HomeDir resolves the user's home directory for registry defaults.
	HomeDir func() (string, error)
}

// NewSettingsLoader creates a loader for the default settings file.
func NewSettingsLoader() *FileSettingsLoader {
	return &FileSettingsLoader{
		Filename: domain.SettingsFileName,
		HomeDir:  os.UserHomeDir,
	}
}

// Load reads the settings from root. Missing fields keep their defaults.
func (l *FileSettingsLoader) Load(root string) (domain.Settings, error) {
	home, err := l.HomeDir()
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to resolve home directory")
	}
	settings := domain.DefaultSettings(home)

	path := filepath.Join(root, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrSettingsRead, err.Error()), "path", path)
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrSettingsParse, err.Error()), "path", path)
	}

	if file.GitHost != "" {
		settings.GitHost = file.GitHost
	}
	if file.WorkDir != "" {
		settings.WorkDir = file.WorkDir
	}
	if file.RegistryRoot != "" {
		settings.RegistryRoot = expandHome(file.RegistryRoot, home)
	}
	if file.DefaultBranch != "" {
		settings.DefaultBranch = file.DefaultBranch
	}
	if file.Concurrency < 0 {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrSettingsParse, "concurrency must not be negative"), "path", path)
	}
	settings.Concurrency = file.Concurrency
	if file.GitTimeout != "" {
		timeout, err := time.ParseDuration(file.GitTimeout)
		if err != nil || timeout <= 0 {
			err = zerr.Wrap(domain.ErrSettingsParse, "gitTimeout must be a positive duration")
			return domain.Settings{}, zerr.With(err, "gitTimeout", file.GitTimeout)
		}
		settings.GitTimeout = timeout
	}

	return settings, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}
