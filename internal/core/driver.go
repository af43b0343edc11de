// SPDX-License-Identifier: Apache-2.0

// Package core wires the provisioning library from the deployment configuration.
package core

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/hashgraph/puf-provisioner/internal/config"
	"github.com/hashgraph/puf-provisioner/internal/doctor"
	"github.com/hashgraph/puf-provisioner/modules/selftest"
	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/hashgraph/puf-provisioner/pkg/provision"
)

// DriverOption customizes NewDriver.
type DriverOption func(*driverOptions)

type driverOptions struct {
	status  channel.StatusHandler
	query   channel.QueryHandler
	modules []provision.Module
}

// WithStatusHandler routes reports to h instead of the process logger.
func WithStatusHandler(h channel.StatusHandler) DriverOption {
	return func(o *driverOptions) {
		o.status = h
	}
}

// WithQueryHandler answers module queries with h, typically a channel.Console. It takes precedence over the
// answers configured under provision.answers.
func WithQueryHandler(h channel.QueryHandler) DriverOption {
	return func(o *driverOptions) {
		o.query = h
	}
}

// WithModules replaces the built-in module set.
func WithModules(mods ...provision.Module) DriverOption {
	return func(o *driverOptions) {
		o.modules = mods
	}
}

// BuiltinModules returns the modules compiled into this library.
func BuiltinModules() []provision.Module {
	return []provision.Module{selftest.New()}
}

// NewDriver builds a Runner from cfg. Without explicit handlers, reports go to the process logger and queries are
// answered from cfg.Provision.Answers, or not at all when that table is empty.
func NewDriver(cfg config.Config, opts ...DriverOption) (*provision.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, IllegalArgument.Wrap(err, "invalid configuration")
	}

	o := &driverOptions{modules: BuiltinModules()}
	for _, opt := range opts {
		opt(o)
	}

	if o.status == nil {
		o.status = channel.LogStatusHandler(logx.As())
	}

	if o.query == nil && len(cfg.Provision.Answers) > 0 {
		o.query = channel.AnswersQueryHandler(cfg.Provision.Answers)
	}

	store, err := nvstore.NewStore(cfg.Store.Root)
	if err != nil {
		return nil, SetupFailed.Wrap(err, "failed to open NV store at %s", cfg.Store.Root)
	}

	ch, err := channel.New(o.status, o.query)
	if err != nil {
		return nil, SetupFailed.Wrap(err, "failed to create status channel")
	}

	reg, err := provision.NewRegistry(o.modules...)
	if err != nil {
		return nil, SetupFailed.Wrap(err, "failed to register modules")
	}

	runnerOpts := []provision.RunnerOption{provision.WithLockTimeout(cfg.Provision.LockTimeout)}
	if cfg.Provision.LockDir != "" {
		runnerOpts = append(runnerOpts, provision.WithLockDir(cfg.Provision.LockDir))
	}

	r, err := provision.NewRunner(reg, store, ch, runnerOpts...)
	if err != nil {
		return nil, SetupFailed.Wrap(err, "failed to create runner")
	}

	logx.As().Debug().
		Str("root", cfg.Store.Root).
		Int("modules", len(reg.List())).
		Bool("interactive", ch.Interactive()).
		Msg("Provisioning driver ready")

	return r, nil
}

// ProvisionAll runs one step of every registered module and diagnoses the modules that failed.
func ProvisionAll(ctx context.Context, r *provision.Runner) (*automa.Report, []*doctor.ErrorDiagnosis, error) {
	report, err := r.ProvisionAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	return report, doctor.CheckReportErr(report), nil
}
