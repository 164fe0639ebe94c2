package app

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/swap/commands/server"
	"github.com/iov-one/swap/errors"
)

// Config is the node configuration read from <home>/config/swapd.toml.
type Config struct {
	server.StartConfig

	// LogLevel is passed to the tendermint log filter, for example
	// "info" or "debug".
	LogLevel string `toml:"log_level"`
	// DBDir is the leveldb directory. A relative path is resolved
	// against the home directory, an empty one keeps the state in memory.
	DBDir string `toml:"db_dir"`
}

// DefaultConfig returns the configuration written on first start.
func DefaultConfig() Config {
	return Config{
		StartConfig: server.DefaultStartConfig(),
		LogLevel:    "info",
		DBDir:       filepath.Join("data", "swap.db"),
	}
}

// ConfigPath returns the location of the configuration file in given home
// directory.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "swapd.toml")
}

// LoadConfig reads the configuration from the home directory. When the file
// does not exist, the default configuration is written there and returned.
func LoadConfig(home string) (*Config, error) {
	path := ConfigPath(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		conf := DefaultConfig()
		if err := writeConfig(path, &conf); err != nil {
			return nil, err
		}
		return &conf, nil
	}

	conf := DefaultConfig()
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %q: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInput, "config %q: unknown key %q", path, undecoded[0].String())
	}
	return &conf, nil
}

// DBPath returns the absolute database location for given home directory.
func (c *Config) DBPath(home string) string {
	if c.DBDir == "" || filepath.IsAbs(c.DBDir) {
		return c.DBDir
	}
	return filepath.Join(home, c.DBDir)
}

func writeConfig(path string, conf *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
