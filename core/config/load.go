package config

import (
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads and validates the configuration file at path. Settings the
// file doesn't mention keep their defaults; an empty path yields the
// defaults untouched.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	out := Default()
	out.fs = fsys

	if path == "" {
		return out, nil
	}

	configContents, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
