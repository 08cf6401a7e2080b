// Package config holds the shell's tunable settings.
package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name Initialize writes and Load expects.
const ConfigurationName = "config.yaml"

// Configuration controls the shell's prompt, search path and limits.
type Configuration struct {
	fs afero.Fs

	// Prompt is printed verbatim before each interactive line.
	Prompt string `json:"prompt"`

	// Path seeds the command search registry. The path builtin replaces
	// it wholesale at runtime.
	Path []string `json:"path" validate:"dive,required"`

	// MaxTokens bounds the tokens on a single line. Longer lines are
	// rejected, never truncated.
	MaxTokens int `json:"max_tokens" validate:"gte=1"`

	// MaxProcs bounds the external commands launched per line. Zero
	// means no limit.
	MaxProcs int `json:"max_procs" validate:"gte=0"`

	// TraceLog is the destination for the JSON lines event trace. Empty
	// disables tracing.
	TraceLog string `json:"trace_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// OpenTraceLog opens the trace log in an append only state.
func (c *Configuration) OpenTraceLog() (afero.File, error) {
	return c.fs.OpenFile(c.TraceLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadTraceLog opens the trace log for reading.
func (c *Configuration) ReadTraceLog() (afero.File, error) {
	return c.fs.OpenFile(c.TraceLog, os.O_RDONLY, 0600)
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	var out Configuration
	// Will panic() on load failure because it should never happen at runtime.
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.fs = afero.NewOsFs()
	return &out
}
