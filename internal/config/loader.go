// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const ConfigFilename = "invoker.yml"

// configurationLoader loads configuration
type configurationLoader struct {
	configurationDirectory string
	logger                 *log.Logger
}

func NewConfigurationLoader(configurationDirectory string, logger *log.Logger) (*configurationLoader, error) {
	if configurationDirectory == "" {
		return nil, errors.New("configuration directory is required")
	}
	return &configurationLoader{
		configurationDirectory: configurationDirectory,
		logger:                 logger.ApplyPrefix(" [config]"),
	}, nil
}

// LoadConfiguration reads the yaml file over the defaults. A missing file is
// not an error: everything can come from the environment.
func (cl *configurationLoader) LoadConfiguration() (*Configuration, error) {
	loaded := Default()

	configurationFile := cl.ConfigFile()
	data, err := os.ReadFile(configurationFile)
	if os.IsNotExist(err) {
		cl.logger.Debug().Str("file", configurationFile).Msg("no configuration file, using defaults")
		return loaded, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration")
	}

	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", configurationFile)
	}
	cl.logger.Debug().Str("file", configurationFile).Msg("loaded configuration")
	return loaded, nil
}

// Initialize writes a commented example configuration. It never overwrites
// an existing file.
func (cl *configurationLoader) Initialize() error {
	configFile := cl.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		return errors.Errorf("%s already exists", configFile)
	}
	if err := os.MkdirAll(cl.configurationDirectory, 0o755); err != nil {
		return errors.Wrap(err, "creating configuration directory")
	}

	header := "This is the configuration file for invoker"
	if err := WriteYamlWithComments(Default(), header, configFile); err != nil {
		cl.logger.Error().Err(err).Msg("error writing file")
		return err
	}
	cl.logger.Info().Str("file", configFile).Msg("wrote configuration")
	return nil
}

func (cl *configurationLoader) ConfigFile() string {
	return filepath.Join(cl.configurationDirectory, ConfigFilename)
}

// ReadEnvFile parses a dotenv file without touching the process environment.
// A missing file yields no values.
func ReadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if os.IsNotExist(errors.Cause(err)) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return values, nil
}

// EnvLookup resolves a variable from the process environment first, then
// from the dotenv values.
func EnvLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}
