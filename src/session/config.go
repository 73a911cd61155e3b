package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/misawa-san/waveview/src/wavelog"
)

// DefaultConfigFile is the session config location when none is given.
const DefaultConfigFile = "waveview_session.yaml"

// Config is the durable view state: plot order, cursor time and x-range.
// Nil pointers mean "not set, use defaults". Unknown keys in the file are
// ignored so newer writers stay readable.
type Config struct {
	PlotOrder  []string    `yaml:"plot_order"`
	CursorTime *float64    `yaml:"cursor_time"`
	XRange     *[2]float64 `yaml:"x_range"`
}

// LoadConfig reads the config file. A missing or malformed file is never
// fatal: it logs and returns the zero Config (natural order, no cursor, full
// extent).
func LoadConfig(path string) Config {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			wavelog.Warnf("config %s unreadable, using defaults: %v", path, err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		wavelog.Warnf("config %s malformed, using defaults: %v", path, err)
		return Config{}
	}
	return cfg
}

// SaveConfig writes the config with an atomic replace. Failures are logged
// and returned but the session is expected to carry on; the next qualifying
// change simply retries.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		wavelog.Warnf("config save failed: %v", err)
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		wavelog.Warnf("config save failed: %v", err)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		wavelog.Warnf("config save failed: %v", err)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		wavelog.Warnf("config save failed: %v", err)
		return err
	}
	return nil
}
