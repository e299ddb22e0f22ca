package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/chromakey/pkg/stdimg"
)

// Environment variables read by LoadConfig.
const (
	EnvThreshold   = "CHROMAKEY_THRESHOLD"
	EnvNormalize   = "CHROMAKEY_NORMALIZE"
	EnvStrict      = "CHROMAKEY_STRICT"
	EnvDarknessSum = "CHROMAKEY_DARKNESS_SUM"
	EnvDebug       = "CHROMAKEY_DEBUG"
	EnvMagick      = "CHROMAKEY_MAGICK"
)

// Config holds settings from the environment. Nil pointers mean "unset",
// leaving the mode's own defaults in place.
type Config struct {
	Threshold   *float64
	Normalize   *bool
	Strict      *bool
	DarknessSum *float64
	Debug       bool
	Magick      bool
}

// LoadConfig reads an optional .env from the working directory, then the
// CHROMAKEY_* variables. Variables already set in the process win over .env.
func LoadConfig() (Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	var c Config
	var err error
	if c.Threshold, err = envFloat(getenv, EnvThreshold); err != nil {
		return c, err
	}
	if c.Threshold != nil && *c.Threshold < 0 {
		return c, usageErrorf("", "%s: must be >= 0, got %v", EnvThreshold, *c.Threshold)
	}
	if c.DarknessSum, err = envFloat(getenv, EnvDarknessSum); err != nil {
		return c, err
	}
	if c.Normalize, err = envBool(getenv, EnvNormalize); err != nil {
		return c, err
	}
	if c.Strict, err = envBool(getenv, EnvStrict); err != nil {
		return c, err
	}
	debug, err := envBool(getenv, EnvDebug)
	if err != nil {
		return c, err
	}
	c.Debug = debug != nil && *debug
	magick, err := envBool(getenv, EnvMagick)
	if err != nil {
		return c, err
	}
	c.Magick = magick != nil && *magick
	return c, nil
}

func envFloat(getenv func(string) string, name string) (*float64, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, usageErrorf("", "%s: expected a number, got %q", name, raw)
	}
	return &f, nil
}

func envBool(getenv func(string) string, name string) (*bool, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return nil, nil
	}
	s, err := parseBoolLikeToString(raw)
	if err != nil {
		return nil, usageErrorf("", "%s: %v", name, err)
	}
	b := s == "true"
	return &b, nil
}

// Apply overlays the configured overrides on opts.
func (c Config) Apply(opts stdimg.SegmentOptions) stdimg.SegmentOptions {
	if c.Threshold != nil {
		opts.Threshold = *c.Threshold
	}
	if c.Normalize != nil {
		opts.Normalize = *c.Normalize
	}
	if c.Strict != nil {
		opts.Strict = *c.Strict
	}
	if c.DarknessSum != nil {
		opts.DarknessSum = *c.DarknessSum
	}
	return opts
}
