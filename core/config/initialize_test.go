package config

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	logger := log.New(io.Discard, "", 0)

	cfg, err := Initialize(fsys, "/work", logger)
	if err != nil {
		t.Fatal(err)
	}

	// Check that the written config is valid and loadable.
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "wish> ", cfg.Prompt)

	exists, err := afero.Exists(fsys, "/work/config.yaml")
	assert.Nil(t, err)
	assert.True(t, exists)
}

func TestInitializeKeepsExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	logger := log.New(io.Discard, "", 0)

	custom := []byte("prompt: \"custom> \"\n")
	assert.Nil(t, afero.WriteFile(fsys, "/work/config.yaml", custom, 0644))

	cfg, err := Initialize(fsys, "/work", logger)
	assert.Nil(t, err)
	assert.Equal(t, "custom> ", cfg.Prompt)

	contents, err := afero.ReadFile(fsys, "/work/config.yaml")
	assert.Nil(t, err)
	assert.Equal(t, custom, contents, "existing config must not be clobbered")
}
