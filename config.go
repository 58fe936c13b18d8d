package debugdraw

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the accumulator options.
//
//	base_scale: 0.02
//	line_height: 1200
//	frame_capacity: 512
//	verbose: true
//
// Zero values keep the defaults.
type Config struct {
	BaseScale     float32 `yaml:"base_scale"`
	LineHeight    float32 `yaml:"line_height"`
	FrameCapacity int     `yaml:"frame_capacity"`
	Verbose       bool    `yaml:"verbose"`
}

// LoadConfig decodes a YAML config. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "debugdraw: decode config")
	}
	if cfg.BaseScale < 0 || cfg.LineHeight < 0 || cfg.FrameCapacity < 0 {
		return Config{}, errors.Errorf("debugdraw: config values must not be negative: %+v", cfg)
	}
	return cfg, nil
}

// Options converts the config into accumulator options.
// Verbose only ever enables debug logging; a false value leaves the
// current level alone.
func (c Config) Options() []Option {
	if c.Verbose {
		SetVerbose(true)
	}

	var opts []Option
	if c.BaseScale > 0 {
		opts = append(opts, WithBaseScale(c.BaseScale))
	}
	if c.LineHeight > 0 {
		opts = append(opts, WithLineHeight(c.LineHeight))
	}
	if c.FrameCapacity > 0 {
		opts = append(opts, WithFrameCapacity(c.FrameCapacity))
	}
	return opts
}
