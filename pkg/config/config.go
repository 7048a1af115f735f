// Package config loads YAML presets for the generation CLIs. An empty
// path yields the built-in defaults, so every flag works without a
// preset file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stigsb/rumi-leaf/pkg/model"
)

// Config captures the tunable parameters for all generators plus
// logging.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Leaf      LeafConfig      `yaml:"leaf"`
	Disc      DiscConfig      `yaml:"disc"`
	Medallion MedallionConfig `yaml:"medallion"`
}

// LogConfig selects the log level and an optional rotated log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type LeafConfig struct {
	ScaleXY        float64 `yaml:"scaleXY"`
	ScaleZ         float64 `yaml:"scaleZ"`
	BaseThickness  float64 `yaml:"baseThickness"`
	Stride         int     `yaml:"stride"`
	AlphaThreshold float64 `yaml:"alphaThreshold"`
}

type DiscConfig struct {
	Diameter   float64 `yaml:"diameter"`
	BaseHeight float64 `yaml:"baseHeight"`
	Density    float64 `yaml:"density"`
	Convexity  float64 `yaml:"convexity"`
	Resolution int     `yaml:"resolution"`
	Seed       int64   `yaml:"seed"`
}

type MedallionConfig struct {
	Diameter      float64   `yaml:"diameter"`
	Convexity     float64   `yaml:"convexity"`
	Resolution    int       `yaml:"resolution"`
	RidgeRadii    []float64 `yaml:"ridgeRadii"`
	OrnamentCount int       `yaml:"ornaments"`
}

// Load reads configuration from a YAML file if provided. An empty path
// returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

// Default mirrors the generator defaults so a zero-value preset file
// changes nothing.
func Default() *Config {
	leaf := model.DefaultLeafParams()
	disc := model.DefaultDiscParams()
	med := model.DefaultMedallionParams()
	return &Config{
		Log: LogConfig{Level: "info"},
		Leaf: LeafConfig{
			ScaleXY:        leaf.ScaleXY,
			ScaleZ:         leaf.ScaleZ,
			BaseThickness:  leaf.BaseThickness,
			Stride:         leaf.Stride,
			AlphaThreshold: leaf.AlphaThreshold,
		},
		Disc: DiscConfig{
			Diameter:   disc.Diameter,
			BaseHeight: disc.BaseHeight,
			Density:    disc.Density,
			Convexity:  disc.Convexity,
			Resolution: disc.Resolution,
			Seed:       disc.Seed,
		},
		Medallion: MedallionConfig{
			Diameter:      med.Diameter,
			Convexity:     med.Convexity,
			Resolution:    med.Resolution,
			RidgeRadii:    med.RidgeRadii,
			OrnamentCount: med.OrnamentCount,
		},
	}
}

// Validate runs every parameter set through the model validators and
// returns the first blocking problem.
func (c *Config) Validate() error {
	if err := model.FirstError(model.ValidateLeaf(c.LeafParams())); err != nil {
		return errors.Wrap(err, "leaf")
	}
	if err := model.FirstError(model.ValidateDisc(c.DiscParams())); err != nil {
		return errors.Wrap(err, "disc")
	}
	if err := model.FirstError(model.ValidateMedallion(c.MedallionParams())); err != nil {
		return errors.Wrap(err, "medallion")
	}
	return nil
}

// LeafParams converts the leaf section to pipeline parameters.
func (c *Config) LeafParams() model.LeafParams {
	return model.LeafParams{
		ScaleXY:        c.Leaf.ScaleXY,
		ScaleZ:         c.Leaf.ScaleZ,
		BaseThickness:  c.Leaf.BaseThickness,
		Stride:         c.Leaf.Stride,
		AlphaThreshold: c.Leaf.AlphaThreshold,
	}
}

// DiscParams converts the disc section to pipeline parameters.
func (c *Config) DiscParams() model.DiscParams {
	return model.DiscParams{
		Diameter:   c.Disc.Diameter,
		BaseHeight: c.Disc.BaseHeight,
		Density:    c.Disc.Density,
		Convexity:  c.Disc.Convexity,
		Resolution: c.Disc.Resolution,
		Seed:       c.Disc.Seed,
	}
}

// MedallionParams converts the medallion section to pipeline parameters.
func (c *Config) MedallionParams() model.MedallionParams {
	return model.MedallionParams{
		Diameter:      c.Medallion.Diameter,
		Convexity:     c.Medallion.Convexity,
		Resolution:    c.Medallion.Resolution,
		RidgeRadii:    c.Medallion.RidgeRadii,
		OrnamentCount: c.Medallion.OrnamentCount,
	}
}
