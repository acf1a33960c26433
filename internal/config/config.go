// Package config handles the optional stasm.toml run configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "stasm.toml"

// Config holds run settings. Command line flags override them.
type Config struct {
	Verbose        bool     `toml:"verbose"`
	NoColor        bool     `toml:"no_color"`
	Trace          bool     `toml:"trace"`
	List           bool     `toml:"list"`
	MaxSteps       int      `toml:"max_steps"`
	CommentMarkers []string `toml:"comment_markers"`
}

// Default returns the settings used when there is no file.
func Default() Config {
	return Config{
		CommentMarkers: []string{"--", ";"},
	}
}

// Load parses the TOML file at path. Keys that do not map to a setting are
// rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parse error in %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if cfg.MaxSteps < 0 {
		return Config{}, errors.Errorf("max_steps in %s must not be negative", path)
	}
	if len(cfg.CommentMarkers) == 0 {
		cfg.CommentMarkers = Default().CommentMarkers
	}

	return cfg, nil
}

// Find loads DefaultFile from dir if it exists. The boolean reports whether
// a file was found.
func Find(dir string) (Config, bool, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), false, nil
		}
		return Config{}, false, errors.Wrapf(err, "cannot stat %s", path)
	}

	cfg, err := Load(path)
	return cfg, err == nil, err
}
