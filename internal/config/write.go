package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/errors"
)

// WriteDefault serializes the default configuration to path, creating parent
// directories as needed. It refuses to overwrite an existing file so a
// hand-edited config is never clobbered by `skstress init`.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(os.ErrExist, "config file already exists at %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
