// Package config loads tsast settings from a YAML or TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/serializer"
	"github.com/spicery/tsast/pkg/source"
)

// DefaultOutput is the destination used when none is given.
const DefaultOutput = "ast.json"

// Config mirrors the command line flags. Keys use the flag names.
type Config struct {
	Format     string `yaml:"format,omitempty" toml:"format"`
	Indent     int    `yaml:"indent,omitempty" toml:"indent"`
	Output     string `yaml:"output,omitempty" toml:"output"`
	NoPos      bool   `yaml:"no-pos,omitempty" toml:"no-pos"`
	KindNames  bool   `yaml:"kind-names,omitempty" toml:"kind-names"`
	ColumnUnit string `yaml:"column-unit,omitempty" toml:"column-unit"`
	Language   string `yaml:"language,omitempty" toml:"language"`
	MaxDepth   int    `yaml:"max-depth,omitempty" toml:"max-depth"`
	Trim       int    `yaml:"trim,omitempty" toml:"trim"`
	Trivia     bool   `yaml:"trivia" toml:"trivia"`
}

func Default() Config {
	return Config{
		Format:     "JSON",
		Indent:     0,
		Output:     DefaultOutput,
		ColumnUnit: source.ColumnUTF16.String(),
		Trivia:     true,
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return cfg, fmt.Errorf("%s: unsupported config format %q (want .yaml, .yml or .toml)", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString decodes YAML content over the defaults.
func LoadFromString(yamlContent string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(yamlContent), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) PrintOptions() *common.PrintOptions {
	return &common.PrintOptions{
		Format:            c.Format,
		Indent:            c.Indent,
		TrimTokenOnOutput: c.Trim,
	}
}

func (c Config) Serializer() (serializer.Config, error) {
	unit, err := source.ParseColumnUnit(c.ColumnUnit)
	if err != nil {
		return serializer.Config{}, err
	}
	if c.MaxDepth < 0 {
		return serializer.Config{}, fmt.Errorf("max-depth must not be negative, got %d", c.MaxDepth)
	}
	return serializer.Config{
		IncludePositions: !c.NoPos,
		IncludeKindName:  c.KindNames,
		Columns:          unit,
		MaxDepth:         c.MaxDepth,
	}, nil
}
