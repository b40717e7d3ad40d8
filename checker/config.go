package checker

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config tunes a checker run. The zero value checks everything with
// no visualization.
type Config struct {
	// IgnoreFuncs lists function names to skip.
	IgnoreFuncs []string `yaml:"ignore-funcs"`
	// IncludeTests also loads and checks test files.
	IncludeTests bool `yaml:"include-tests"`
	// Visualize, when non-empty, is a directory receiving one
	// annotated graph image per analyzed function.
	Visualize string `yaml:"visualize"`
	// VisualizeFormat is the image format, defaulting to svg.
	VisualizeFormat string `yaml:"visualize-format"`
}

// LoadConfig reads a YAML config file. An empty path yields the zero
// config.
func LoadConfig(path string) (Config, error) {
	var conf Config
	if path == "" {
		return conf, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := yaml.UnmarshalStrict(contents, &conf); err != nil {
		return conf, err
	}
	return conf, nil
}

func (c Config) Ignored(fn string) bool {
	for _, name := range c.IgnoreFuncs {
		if name == fn {
			return true
		}
	}
	return false
}

func (c Config) visualizeFormat() string {
	if c.VisualizeFormat == "" {
		return "svg"
	}
	return c.VisualizeFormat
}
