// SPDX-License-Identifier: Apache-2.0

// Package selftest is a module that exercises the provisioning core without touching hardware. It needs three
// invocations: the first two persist a step marker in its temporary store and the third promotes the result into
// its final store.
package selftest

import (
	"strconv"
	"strings"

	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/hashgraph/puf-provisioner/pkg/provision"
	"github.com/joomcode/errorx"
)

const (
	Name = "selftest"

	QueryKey      = "testquery"
	QueryPrompt   = "Enter any data: "
	FinalContents = "provisioned"

	queryBufferSize = 500
)

var info = module.Info{
	Name:        Name,
	Author:      "Hedera Hashgraph, LLC",
	Description: "provisioning core self test module",
}

// Module implements provision.Module.
type Module struct{}

var _ provision.Module = (*Module)(nil)

func New() *Module {
	return &Module{}
}

func (m *Module) Info() module.Info {
	return info
}

func (m *Module) IsHardwareSupported() bool {
	return true
}

func (m *Module) ChallengeResponse(_ []byte) ([]byte, error) {
	return nil, module.Unsupported.New("module %q has no challenge-response function", Name).
		WithProperty(module.NameProperty, Name)
}

func (m *Module) Provision(ctx *provision.Context) module.Result {
	_, err := ctx.CreateStore(nvstore.TempFile)
	if err == nil {
		ctx.Report(channel.LevelInfo, "creating NV store")
		return m.start(ctx)
	}

	if !errorx.IsOfType(err, nvstore.AlreadyExists) {
		ctx.Perror(err)
		return module.Error
	}

	ctx.Report(channel.LevelInfo, "NV store exists, continuing provision")
	return m.resume(ctx)
}

func (m *Module) start(ctx *provision.Context) module.Result {
	ctx.Report(channel.LevelInfo, "writing to NV store")
	if err := ctx.WriteStore(nvstore.TempFile, marker(1)); err != nil {
		ctx.Perror(err)
		return module.Error
	}
	ctx.Report(channel.LevelInfo, "provisioning will continue after the next invocation")

	answer, err := ctx.QueryString(QueryKey, QueryPrompt, queryBufferSize)
	switch {
	case err == nil:
		ctx.Reportf(channel.LevelInfo, "query input was: %s", answer)
	case errorx.IsOfType(err, channel.NoHandler):
		ctx.Logger().Debug().Str("key", QueryKey).Msg("No query handler installed, skipping operator input")
	default:
		ctx.Reportf(channel.LevelWarn, "query failed: %v", err)
	}

	return module.Incomplete
}

func (m *Module) resume(ctx *provision.Context) module.Result {
	ctx.Report(channel.LevelInfo, "reading from NV store")
	b, err := ctx.ReadStore(nvstore.TempFile)
	if err != nil {
		ctx.Perror(err)
		return module.Error
	}

	step, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		step = 0
	}

	switch step {
	case 1:
		ctx.Report(channel.LevelInfo, "writing to NV store again")
		if err := ctx.WriteStore(nvstore.TempFile, marker(2)); err != nil {
			ctx.Perror(err)
			return module.Error
		}
		ctx.Report(channel.LevelInfo, "provisioning will continue after the next invocation")
		return module.Incomplete

	case 2:
		ctx.Report(channel.LevelInfo, "complete")
		ctx.Report(channel.LevelInfo, "deleting NV store")
		if err := ctx.DeleteStore(nvstore.TempFile); err != nil {
			ctx.Perror(err)
			return module.Error
		}

		if _, err := ctx.CreateStore(nvstore.FinalFile); err != nil {
			ctx.Perror(err)
			return module.Error
		}

		if err := ctx.WriteStore(nvstore.FinalFile, []byte(FinalContents)); err != nil {
			ctx.Perror(err)
			return module.Error
		}
		return module.Complete

	default:
		ctx.Report(channel.LevelWarn, "NV store corrupted")
		return ctx.Fail(provision.StateCorruption.New("unrecognised step marker %q", strings.TrimSpace(string(b))))
	}
}

func marker(step int) []byte {
	return []byte(strconv.Itoa(step) + "\n")
}
