// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "puflib.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func restoreGlobal(t *testing.T) {
	t.Helper()
	saved := globalConfig
	t.Cleanup(func() {
		globalConfig = saved
		_ = logx.Initialize(saved.Log)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultStoreRoot, cfg.Store.Root)
	require.Equal(t, DefaultLockTimeout, cfg.Provision.LockTimeout)
	require.NoError(t, cfg.Validate())
}

func TestInitialize_EmptyPathKeepsConfig(t *testing.T) {
	restoreGlobal(t)
	before := Get()
	require.NoError(t, Initialize(""))
	require.Equal(t, before, Get())
}

func TestInitialize_ReadsFile(t *testing.T) {
	restoreGlobal(t)

	p := writeConfig(t, `
log:
  level: "Debug"
store:
  root: "/srv/puflib/"
provision:
  lockTimeout: "3s"
  answers:
    testquery: "from config"
`)

	require.NoError(t, Initialize(p))

	cfg := Get()
	require.Equal(t, "Debug", cfg.Log.Level)
	require.Equal(t, "/srv/puflib", cfg.Store.Root, "root is cleaned")
	require.Equal(t, 3*time.Second, cfg.Provision.LockTimeout)
	require.Equal(t, map[string]string{"testquery": "from config"}, cfg.Provision.Answers)
}

func TestInitialize_AppliesLogLevel(t *testing.T) {
	restoreGlobal(t)

	require.NoError(t, Initialize(writeConfig(t, `
log:
  level: "Warn"
`)))
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, Initialize(writeConfig(t, `
log:
  level: "Debug"
`)))
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestInitialize_BadLogLevelKeepsConfig(t *testing.T) {
	restoreGlobal(t)
	before := Get()

	err := Initialize(writeConfig(t, `
log:
  level: "loud"
`))
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, InvalidConfigError))
	require.Equal(t, before, Get())
}

func TestInitialize_MissingKeysKeepDefaults(t *testing.T) {
	restoreGlobal(t)

	p := writeConfig(t, `
log:
  level: "Warn"
`)

	require.NoError(t, Initialize(p))
	require.Equal(t, DefaultStoreRoot, Get().Store.Root)
	require.Equal(t, DefaultLockTimeout, Get().Provision.LockTimeout)
}

func TestInitialize_EnvOverride_StoreRoot(t *testing.T) {
	restoreGlobal(t)

	p := writeConfig(t, `
store:
  root: "/srv/puflib"
`)
	t.Setenv("PUFLIB_STORE_ROOT", "/data/puflib")

	require.NoError(t, Initialize(p))
	require.Equal(t, "/data/puflib", Get().Store.Root)
}

func TestInitialize_Errors(t *testing.T) {
	restoreGlobal(t)

	err := Initialize(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errorx.IsOfType(err, NotFoundError))

	err = Initialize(writeConfig(t, `
store:
  root: "relative/root"
`))
	require.True(t, errorx.IsOfType(err, InvalidConfigError))
	require.Equal(t, DefaultStoreRoot, Get().Store.Root, "a rejected file does not replace the config")

	err = Initialize(writeConfig(t, `
provision:
  lockTimeout: "0s"
`))
	require.True(t, errorx.IsOfType(err, InvalidConfigError))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "lock dir", mutate: func(c *Config) { c.Provision.LockDir = "/run/puflib" }},
		{name: "empty root", mutate: func(c *Config) { c.Store.Root = "" }, wantErr: true},
		{name: "root traversal", mutate: func(c *Config) { c.Store.Root = "/var/../etc" }, wantErr: true},
		{name: "filesystem root", mutate: func(c *Config) { c.Store.Root = "/" }, wantErr: true},
		{name: "relative lock dir", mutate: func(c *Config) { c.Provision.LockDir = "locks" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Provision.LockTimeout = -time.Second }, wantErr: true},
		{
			name:    "bad answer key",
			mutate:  func(c *Config) { c.Provision.Answers = map[string]string{"bad key": "x"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSet(t *testing.T) {
	restoreGlobal(t)

	require.True(t, errorx.IsOfType(Set(nil), errorx.IllegalArgument))

	cfg := Default()
	cfg.Store.Root = "/opt/puflib/"
	require.NoError(t, Set(&cfg))
	require.Equal(t, "/opt/puflib", Get().Store.Root)

	cfg.Store.Root = "nope"
	require.True(t, errorx.IsOfType(Set(&cfg), InvalidConfigError))
	require.Equal(t, "/opt/puflib", Get().Store.Root)
}
