// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/automa-saga/logx"
)

func init() {
	// initialize logging with defaults
	_ = logx.Initialize(globalConfig.Log)
}

// initializeLogging applies a logging section loaded by Initialize.
func initializeLogging(cfg logx.LoggingConfig) error {
	if err := logx.Initialize(cfg); err != nil {
		return InvalidConfigError.Wrap(err, "failed to initialize logging with level %q", cfg.Level)
	}
	return nil
}
