// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/fsx"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

const (
	DefaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 100 * time.Millisecond
	lockDirName        = "locks"

	provisionWorkflowID = "provision-modules"

	// Step metadata keys reported by ProvisionAll.
	MetaModule = "module"
	MetaResult = "result"
	MetaStatus = "status"
)

type RunnerOption func(*Runner) error

// Runner drives modules on behalf of a process: it looks modules up, consults their status and invokes one
// provisioning step per call. Every invocation of a module runs under an advisory file lock so that two drivers
// on the same host never interleave the steps of one module.
type Runner struct {
	registry    *Registry
	store       *nvstore.Store
	channel     *channel.Channel
	fm          fsx.Manager
	lockDir     string
	lockTimeout time.Duration
}

// NewRunner returns a runner for the modules in registry.
func NewRunner(registry *Registry, store *nvstore.Store, ch *channel.Channel, opts ...RunnerOption) (*Runner, error) {
	if registry == nil || store == nil || ch == nil {
		return nil, errorx.IllegalArgument.New("registry, store and channel are required")
	}

	r := &Runner{
		registry:    registry,
		store:       store,
		channel:     ch,
		lockDir:     filepath.Join(store.Resolver().Root(), lockDirName),
		lockTimeout: DefaultLockTimeout,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.fm == nil {
		fm, err := fsx.NewManager()
		if err != nil {
			return nil, err
		}
		r.fm = fm
	}

	return r, nil
}

// WithLockTimeout bounds how long a provisioning call waits for the module lock.
func WithLockTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) error {
		if d <= 0 {
			return errorx.IllegalArgument.New("lock timeout must be positive, got %s", d)
		}
		r.lockTimeout = d
		return nil
	}
}

// WithLockDir places lock files in dir instead of <store root>/locks.
func WithLockDir(dir string) RunnerOption {
	return func(r *Runner) error {
		if !filepath.IsAbs(dir) {
			return errorx.IllegalArgument.New("lock directory must be absolute: %s", dir)
		}
		r.lockDir = filepath.Clean(dir)
		return nil
	}
}

func (r *Runner) Registry() *Registry {
	return r.registry
}

// Status returns the inferred status of the named module.
func (r *Runner) Status(name string) (Status, error) {
	m, err := r.lookup(name)
	if err != nil {
		return StatusError, err
	}

	return Inspect(r.store, m.Info())
}

// Provision runs one provisioning step of the named module. A module that is already provisioned, either before
// or after the module lock is taken, is not invoked and Complete is returned. The error is nil whenever the module itself ran; module.Error results have been
// reported by the module through the channel.
func (r *Runner) Provision(ctx context.Context, name string) (module.Result, error) {
	out, err := r.provision(ctx, name)
	return out.result, err
}

// Deprovision removes the final stores of the named module under the module lock.
func (r *Runner) Deprovision(ctx context.Context, name string) error {
	m, err := r.lookup(name)
	if err != nil {
		return err
	}

	unlock, err := r.lock(ctx, m.Info())
	if err != nil {
		return err
	}
	defer unlock()

	if err := Deprovision(r.store, m.Info()); err != nil {
		r.channel.Perror(m.Info(), err)
		return err
	}

	r.channel.Report(m.Info(), channel.LevelInfo, "deprovisioned")
	return nil
}

// ChallengeResponse forwards challenge to a provisioned, enabled module.
func (r *Runner) ChallengeResponse(name string, challenge []byte) ([]byte, error) {
	m, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	status, err := Inspect(r.store, m.Info())
	if err != nil {
		return nil, err
	}

	if status.Has(Disabled) {
		return nil, ModuleDisabled.New("module %q is disabled", name).WithProperty(module.NameProperty, name)
	}

	if !status.Has(Provisioned) {
		return nil, NotProvisioned.New("module %q is not provisioned", name).WithProperty(module.NameProperty, name)
	}

	return m.ChallengeResponse(challenge)
}

// ProvisionAll runs one provisioning step for every registered module as a workflow with one step per module.
// Modules are independent, so a failing module does not stop the others.
func (r *Runner) ProvisionAll(ctx context.Context) (*automa.Report, error) {
	mods := r.registry.List()
	if len(mods) == 0 {
		return &automa.Report{
			Id:         provisionWorkflowID,
			IsWorkflow: true,
			Action:     automa.ActionExecute,
			Status:     automa.StatusSuccess,
		}, nil
	}

	var builders []automa.Builder
	for _, m := range mods {
		builders = append(builders, r.provisionStep(m.Info().Name))
	}

	wf, err := automa.NewWorkflowBuilder().
		WithId(provisionWorkflowID).
		Steps(builders...).
		WithExecutionMode(automa.ContinueOnError).
		Build()
	if err != nil {
		return nil, errorx.IllegalState.Wrap(err, "failed to build provisioning workflow")
	}

	return wf.Execute(ctx), nil
}

func (r *Runner) provisionStep(name string) automa.Builder {
	return automa.NewStepBuilder().WithId(fmt.Sprintf("provision-%s", name)).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			meta := map[string]string{MetaModule: name}

			out, err := r.provision(ctx, name)
			if err != nil {
				if errorx.IsOfType(err, HardwareUnsupported) {
					meta[MetaStatus] = "unsupported"
					return automa.SkippedReport(stp, automa.WithDetail("hardware not supported"), automa.WithMetadata(meta))
				}
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(meta))
			}

			meta[MetaResult] = out.result.String()
			if out.skipped {
				meta[MetaStatus] = "already-provisioned"
				return automa.SkippedReport(stp, automa.WithDetail("module is already provisioned"), automa.WithMetadata(meta))
			}

			if out.result == module.Error {
				failure := ProvisioningFailed.New("module %q failed to provision", name)
				if out.cause != nil {
					failure = ProvisioningFailed.Wrap(out.cause, "module %q failed to provision", name)
				}
				return automa.FailureReport(stp, automa.WithError(failure), automa.WithMetadata(meta))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		})
}

// stepOutcome is what one invocation of a module produced. skipped is set when the module was already provisioned
// and therefore not invoked; cause is the error the module recorded with Context.Fail, if any.
type stepOutcome struct {
	result  module.Result
	skipped bool
	cause   error
}

func (r *Runner) provision(ctx context.Context, name string) (stepOutcome, error) {
	failed := stepOutcome{result: module.Error}

	m, err := r.lookup(name)
	if err != nil {
		return failed, err
	}

	info := m.Info()
	logger := r.logger(info)

	if !m.IsHardwareSupported() {
		r.channel.Report(info, channel.LevelWarn, "hardware not supported")
		return failed, HardwareUnsupported.New("module %q does not support this hardware", name).
			WithProperty(module.NameProperty, name)
	}

	done, err := r.alreadyProvisioned(info, logger)
	if err != nil {
		return failed, err
	}
	if done {
		return stepOutcome{result: module.Complete, skipped: true}, nil
	}

	unlock, err := r.lock(ctx, info)
	if err != nil {
		r.channel.Perror(info, err)
		return failed, err
	}
	defer unlock()

	// another driver may have finished the module while we waited for the lock
	done, err = r.alreadyProvisioned(info, logger)
	if err != nil {
		return failed, err
	}
	if done {
		return stepOutcome{result: module.Complete, skipped: true}, nil
	}

	pctx, err := NewContext(info, r.store, r.channel)
	if err != nil {
		return failed, err
	}

	start := time.Now()
	res := m.Provision(pctx)
	logger.Info().
		Str("result", res.String()).
		Dur("elapsed", time.Since(start)).
		Msg("Provisioning step finished")

	out := stepOutcome{result: res}
	if res == module.Error {
		out.cause = pctx.Err()
	}
	return out, nil
}

// alreadyProvisioned inspects the module status. Inspection failures are reported on the channel.
func (r *Runner) alreadyProvisioned(info module.Info, logger *zerolog.Logger) (bool, error) {
	status, err := Inspect(r.store, info)
	if err != nil {
		r.channel.Perror(info, err)
		return false, err
	}

	if status.Has(Provisioned) {
		logger.Debug().Str("status", status.String()).Msg("Module is already provisioned, nothing to do")
		return true, nil
	}

	return false, nil
}

func (r *Runner) lookup(name string) (Module, error) {
	m, ok := r.registry.Lookup(name)
	if !ok {
		return nil, module.NotFound.New("module %q is not registered", name).WithProperty(module.NameProperty, name)
	}
	return m, nil
}

func (r *Runner) lock(ctx context.Context, info module.Info) (func(), error) {
	if err := r.fm.CreateDirectory(r.lockDir, true); err != nil {
		return nil, LockFailed.Wrap(err, "failed to create lock directory %q", r.lockDir)
	}

	lockPath := filepath.Join(r.lockDir, info.Name+".lock")
	fileLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, LockFailed.Wrap(err, "failed to acquire lock for module %q", info.Name)
	}
	if !locked {
		return nil, LockFailed.New("timed out acquiring lock for module %q", info.Name)
	}

	return func() {
		if e := fileLock.Unlock(); e != nil {
			logx.As().Warn().Err(e).Str("lockPath", lockPath).Msg("failed to unlock module lock")
		}
	}, nil
}

func (r *Runner) logger(info module.Info) *zerolog.Logger {
	l := logx.As().With().
		Str("module", info.Name).
		Str("run_id", uuid.NewString()).
		Logger()
	return &l
}
