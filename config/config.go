// config loads the boidview run configuration from yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"boidview/assert"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Kind is the only config kind this package decodes.
const Kind = "boidview"

// ErrUnknownKind is returned for a config file whose kind is not Kind.
var ErrUnknownKind error = errors.New("unknown config kind")

// OuterConfig is the file-level envelope: a kind selector and its definition.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Config holds paths and plotting options for a conversion run. Paths are formed
// by joining a directory and a file name; an empty directory means the working
// directory, and an absolute file name ignores the directory.
type Config struct {
	InputDir  string `yaml:"inputdir"`
	Input     string `yaml:"input"`
	OutputDir string `yaml:"outputdir"`
	// Gif is the animation gnuplot writes when it runs the script.
	Gif string `yaml:"gif"`
	// Script is the gnuplot script this program writes.
	Script string `yaml:"script"`

	Palette string `yaml:"palette"`
	Delay   int    `yaml:"delay"`
	View    string `yaml:"view"`

	// RadiusDivisor sets each boid's radius to width/RadiusDivisor.
	RadiusDivisor int `yaml:"radiusdivisor"`
	// Workers > 1 parses records concurrently.
	Workers int `yaml:"workers"`
	// Strict fails the run on malformed or missing records instead of skipping them.
	Strict bool `yaml:"strict"`
	// Print echoes the script to stdout.
	Print bool `yaml:"print"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Input:         "boid_data.boid",
		Gif:           "boids.gif",
		Script:        "boid_script.gp",
		Palette:       "(0 'black', 1 'green', 2 'yellow', 3 'orange', 4 'red')",
		Delay:         5,
		View:          "0,0",
		RadiusDivisor: 5,
		Workers:       1,
	}
}

func (cfg *Config) InputPath() string  { return joinPath(cfg.InputDir, cfg.Input) }
func (cfg *Config) GifPath() string    { return joinPath(cfg.OutputDir, cfg.Gif) }
func (cfg *Config) ScriptPath() string { return joinPath(cfg.OutputDir, cfg.Script) }

// joinPath places a relative file name under dir; absolute names stand alone.
func joinPath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Validate checks that the config can drive a run.
func (cfg *Config) Validate() error {
	if err := assert.NonEmpty(cfg.Input, cfg.Gif, cfg.Script, cfg.Palette, cfg.View); err != nil {
		return fmt.Errorf("invalid config: input, gif, script, palette and view are required: %w", err)
	}
	if err := assert.Positive(float64(cfg.Delay), float64(cfg.RadiusDivisor)); err != nil {
		return fmt.Errorf("invalid config: delay and radiusDivisor must be positive: %w", err)
	}
	if err := assert.IsTrue(cfg.Workers >= 0); err != nil {
		return fmt.Errorf("invalid config: workers must not be negative: %w", err)
	}
	return nil
}

// Load reads the config at path over the defaults. If path does not exist and
// required is false, the defaults are returned.
func Load(path string, required bool) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	return FromYaml(path)
}

// FromYaml reads a config file of the form:
//
//	kind: boidview
//	def:
//	  input: boid_data.boid
//	  delay: 5
//
// Keys absent from def keep their Default values.
func FromYaml(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	var err error
	if err = vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	outerConfig := &OuterConfig{}
	if err = vp.Unmarshal(outerConfig); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if outerConfig.Kind != Kind {
		return nil, fmt.Errorf("read config %s: %w: %q", path, ErrUnknownKind, outerConfig.Kind)
	}

	cfg := Default()
	if outerConfig.Def == nil {
		return cfg, nil
	}

	// Round trip def through yaml to decode it with the yaml tags. Viper lower-cases
	// every key, so the tags are lower case and keys are case-insensitive in the file.
	var spec []byte
	if spec, err = yaml.Marshal(outerConfig.Def); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err = yaml.Unmarshal(spec, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}
