// Package config loads the YAML configuration shared by the binaries.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sky-flux/chrono"
)

// Environment variables that override file values.
const (
	EnvDataDir   = "CHRONO_DATA_DIR"
	EnvOutputDir = "CHRONO_OUTPUT_DIR"
	EnvLogMode   = "CHRONO_LOG_MODE"
)

type Data struct {
	Dir           string `yaml:"dir"`
	Events        string `yaml:"events"`
	UnitsRegistry string `yaml:"units_registry"`
}

type Output struct {
	Dir string `yaml:"dir"`
}

type Log struct {
	Mode string `yaml:"mode"`
}

type Metrics struct {
	ListenAddress string `yaml:"listen_address"` // empty disables the endpoint.
}

type Config struct {
	Data    Data                 `yaml:"data"`
	Output  Output               `yaml:"output"`
	Log     Log                  `yaml:"log"`
	Session chrono.SessionConfig `yaml:"session"`
	Metrics Metrics              `yaml:"metrics"`
}

// EventsPath returns the events file, resolved against the data dir.
func (c *Config) EventsPath() string {
	return c.resolve(c.Data.Events)
}

// UnitsRegistryPath returns the unit registry file, resolved against the data dir.
func (c *Config) UnitsRegistryPath() string {
	return c.resolve(c.Data.UnitsRegistry)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Data.Dir, p)
}

// Load reads the YAML file at path. A missing file yields the defaults.
// Values from envFiles (dotenv format, missing files skipped) and then the
// process environment override the file.
func Load(path string, envFiles ...string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse yaml: %w", err)
			}
		}
	}

	env, err := readEnv(envFiles)
	if err != nil {
		return nil, err
	}
	c.applyEnv(env)
	c.applyDefaults()

	if err := c.Session.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.Events == "" {
		c.Data.Events = "events.json"
	}
	if c.Data.UnitsRegistry == "" {
		c.Data.UnitsRegistry = filepath.Join("units", "index.json")
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "derived"
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "dev"
	}
}

func (c *Config) applyEnv(env map[string]string) {
	if v := env[EnvDataDir]; v != "" {
		c.Data.Dir = v
	}
	if v := env[EnvOutputDir]; v != "" {
		c.Output.Dir = v
	}
	if v := env[EnvLogMode]; v != "" {
		c.Log.Mode = v
	}
}

// readEnv merges dotenv files in order, then the process environment.
func readEnv(files []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}
	for _, k := range []string{EnvDataDir, EnvOutputDir, EnvLogMode} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}
