// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"github.com/automa-saga/logx"
	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// Context is handed to Module.Provision by the driver. It binds the store and the status channel to the module
// being provisioned so that module code never needs process wide state.
type Context struct {
	info    module.Info
	store   *nvstore.Store
	channel *channel.Channel
	logger  *zerolog.Logger
	cause   error
}

// NewContext returns a provisioning context for the module described by info.
func NewContext(info module.Info, store *nvstore.Store, ch *channel.Channel) (*Context, error) {
	if store == nil {
		return nil, errorx.IllegalArgument.New("store cannot be nil")
	}

	if ch == nil {
		return nil, errorx.IllegalArgument.New("channel cannot be nil")
	}

	l := logx.As().With().Str("module", info.Name).Logger()
	return &Context{
		info:    info,
		store:   store,
		channel: ch,
		logger:  &l,
	}, nil
}

func (c *Context) Module() module.Info {
	return c.info
}

func (c *Context) Store() *nvstore.Store {
	return c.store
}

func (c *Context) Channel() *channel.Channel {
	return c.channel
}

// Logger returns a debug logger tagged with the module name. Operator facing messages go through Report instead.
func (c *Context) Logger() *zerolog.Logger {
	return c.logger
}

func (c *Context) CreateStore(t nvstore.Type) (string, error) {
	return c.store.Create(c.info, t)
}

func (c *Context) GetStore(t nvstore.Type) (string, error) {
	return c.store.Get(c.info, t)
}

func (c *Context) DeleteStore(t nvstore.Type) error {
	return c.store.Delete(c.info, t)
}

func (c *Context) ReadStore(t nvstore.Type) ([]byte, error) {
	return c.store.ReadFile(c.info, t)
}

func (c *Context) WriteStore(t nvstore.Type, data []byte) error {
	return c.store.WriteFile(c.info, t, data)
}

func (c *Context) Report(level channel.Level, message string) {
	c.channel.Report(c.info, level, message)
}

func (c *Context) Reportf(level channel.Level, format string, args ...interface{}) {
	c.channel.Reportf(c.info, level, format, args...)
}

func (c *Context) Perror(err error) {
	c.channel.Perror(c.info, err)
}

// Fail records err as the cause of a failed provisioning step and returns module.Error. The runner attaches the
// recorded cause to the step failure. Nothing is reported on the channel.
func (c *Context) Fail(err error) module.Result {
	if err != nil {
		c.cause = err
		c.logger.Warn().Err(err).Msg("Provisioning step failed")
	}
	return module.Error
}

// Err returns the cause recorded by the last call to Fail.
func (c *Context) Err() error {
	return c.cause
}

func (c *Context) Query(key string, prompt string, buf []byte) (int, error) {
	return c.channel.Query(c.info, key, prompt, buf)
}

func (c *Context) QueryString(key string, prompt string, size int) (string, error) {
	return c.channel.QueryString(c.info, key, prompt, size)
}
