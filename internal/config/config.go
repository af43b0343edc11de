// SPDX-License-Identifier: Apache-2.0

// Package config loads the deployment configuration of a provisioning driver: where the NV store lives, how the
// driver logs and how unattended runs answer module queries.
package config

import (
	"strings"
	"time"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/puf-provisioner/pkg/sanity"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"
)

const (
	DefaultStoreRoot   = "/var/lib/puflib"
	DefaultLockTimeout = 10 * time.Second
	EnvPrefix          = "PUFLIB"
)

// Config holds the global configuration for the application.
type Config struct {
	Log       logx.LoggingConfig `yaml:"log" json:"log"`
	Store     StoreConfig        `yaml:"store" json:"store"`
	Provision ProvisionConfig    `yaml:"provision" json:"provision"`
}

// StoreConfig represents the `store` section.
type StoreConfig struct {
	// Root is the directory that holds every category of NV store.
	Root string `yaml:"root" json:"root"`
}

// ProvisionConfig represents the `provision` section.
type ProvisionConfig struct {
	LockTimeout time.Duration `yaml:"lockTimeout" json:"lockTimeout"`
	// LockDir overrides <store.root>/locks.
	LockDir string `yaml:"lockDir" json:"lockDir"`
	// Answers are used to answer module queries when no operator is present. Keys are query keys.
	Answers map[string]string `yaml:"answers" json:"answers"`
}

// Validate checks the store section and returns the cleaned root through the receiver.
func (s *StoreConfig) Validate() error {
	root, err := sanity.SanitizePath(s.Root)
	if err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid store root: %s", s.Root)
	}
	s.Root = root
	return nil
}

func (p *ProvisionConfig) Validate() error {
	if p.LockTimeout <= 0 {
		return errorx.IllegalArgument.New("lock timeout must be positive, got %s", p.LockTimeout)
	}

	if p.LockDir != "" {
		dir, err := sanity.SanitizePath(p.LockDir)
		if err != nil {
			return errorx.IllegalArgument.Wrap(err, "invalid lock directory: %s", p.LockDir)
		}
		p.LockDir = dir
	}

	for key := range p.Answers {
		if err := sanity.QueryKey(key); err != nil {
			return errorx.IllegalArgument.Wrap(err, "invalid answer")
		}
	}

	return nil
}

// Validate validates all configuration sections.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Provision.Validate(); err != nil {
		return err
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Store: StoreConfig{
			Root: DefaultStoreRoot,
		},
		Provision: ProvisionConfig{
			LockTimeout: DefaultLockTimeout,
		},
	}
}

var globalConfig = Default()

// Initialize loads the configuration from the specified file. Values missing from the file keep their defaults
// and every key can be overridden from the environment, e.g. PUFLIB_STORE_ROOT for store.root.
//
// An empty path leaves the current configuration untouched.
func Initialize(path string) error {
	if path == "" {
		return nil
	}

	viper.Reset()
	viper.SetConfigFile(path)
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := viper.ReadInConfig()
	if err != nil {
		return NotFoundError.Wrap(err, "failed to read config file: %s", path).
			WithProperty(errorx.PropertyPayload(), path)
	}

	cfg := Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	if err := cfg.Validate(); err != nil {
		return InvalidConfigError.Wrap(err, "invalid configuration in %s", path).
			WithProperty(errorx.PropertyPayload(), path)
	}

	if err := initializeLogging(cfg.Log); err != nil {
		return err
	}

	globalConfig = cfg
	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the global configuration after validating it.
func Set(c *Config) error {
	if c == nil {
		return errorx.IllegalArgument.New("config cannot be nil")
	}

	cfg := *c
	if err := cfg.Validate(); err != nil {
		return InvalidConfigError.Wrap(err, "invalid configuration")
	}

	globalConfig = cfg
	return nil
}
