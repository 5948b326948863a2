package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio"
)

// DefaultBranch is the branch a new repository starts on unless the config
// says otherwise.
const DefaultBranch = "master"

// Config stores repository-local settings, persisted as TOML in
// .gitlet/.control/config.toml.
type Config struct {
	Core   CoreConfig   `toml:"core"`
	Log    LogConfig    `toml:"log"`
	Commit CommitConfig `toml:"commit"`
}

// CoreConfig holds repository layout settings.
type CoreConfig struct {
	DefaultBranch string `toml:"default_branch"`
}

// LogConfig selects the logrus level used by the command line.
type LogConfig struct {
	Level string `toml:"level"`
}

// CommitConfig holds commit creation settings.
type CommitConfig struct {
	SigningKey string `toml:"signing_key,omitempty"`
}

// DefaultConfig returns the configuration written by Init.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{DefaultBranch: DefaultBranch},
		Log:  LogConfig{Level: "warn"},
	}
}

func configPath(dir string) string {
	return filepath.Join(dir, ".control", "config.toml")
}

// ReadConfig reads the config of the repository control directory dir.
// Missing config, or missing keys, fall back to DefaultConfig values.
func ReadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(configPath(dir), cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Core.DefaultBranch == "" {
		cfg.Core.DefaultBranch = DefaultBranch
	}
	return cfg, nil
}

// WriteConfig atomically writes cfg to the repository config file.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := renameio.WriteFile(configPath(r.Dir), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	r.Config = cfg
	return nil
}
