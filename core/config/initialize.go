package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir for editing,
// logging each step. An existing file is kept as-is.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	name := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, name)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("keeping existing %s", name)
	default:
		logger.Printf("writing %s", name)
		if err := afero.WriteFile(fsys, name, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	}

	return Load(fsys, name)
}
