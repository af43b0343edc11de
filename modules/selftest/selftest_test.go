// SPDX-License-Identifier: Apache-2.0

package selftest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/hashgraph/puf-provisioner/pkg/provision"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

type harness struct {
	root   string
	store  *nvstore.Store
	runner *provision.Runner
	lines  []string
}

func newHarness(t *testing.T, query channel.QueryHandler) *harness {
	t.Helper()

	h := &harness{root: t.TempDir()}

	var err error
	h.store, err = nvstore.NewStore(h.root)
	require.NoError(t, err)

	ch, err := channel.New(func(line string) { h.lines = append(h.lines, line) }, query)
	require.NoError(t, err)

	reg, err := provision.NewRegistry(New())
	require.NoError(t, err)

	h.runner, err = provision.NewRunner(reg, h.store, ch)
	require.NoError(t, err)

	return h
}

func (h *harness) path(kind string) string {
	return filepath.Join(h.root, kind, Name)
}

func (h *harness) provision(t *testing.T) module.Result {
	t.Helper()
	h.lines = nil
	res, err := h.runner.Provision(context.Background(), Name)
	require.NoError(t, err)
	return res
}

func TestModule_Info(t *testing.T) {
	m := New()
	require.Equal(t, Name, m.Info().Name)
	require.NoError(t, m.Info().Validate())
	require.True(t, m.IsHardwareSupported())

	_, err := m.ChallengeResponse([]byte("challenge"))
	require.True(t, errorx.IsOfType(err, module.Unsupported))
}

func TestModule_ThreeStepProvisioning(t *testing.T) {
	h := newHarness(t, channel.AnswersQueryHandler(map[string]string{QueryKey: "abc"}))

	status, err := h.runner.Status(Name)
	require.NoError(t, err)
	require.Zero(t, status)

	// first invocation creates the temporary store and asks the operator
	require.Equal(t, module.Incomplete, h.provision(t))
	require.Contains(t, h.lines, "info (selftest): creating NV store")
	require.Contains(t, h.lines, "info (selftest): query input was: abc")
	b, err := os.ReadFile(h.path("temp-file"))
	require.NoError(t, err)
	require.Equal(t, "1\n", string(b))

	// second invocation advances the marker
	require.Equal(t, module.Incomplete, h.provision(t))
	require.Contains(t, h.lines, "info (selftest): NV store exists, continuing provision")
	b, err = os.ReadFile(h.path("temp-file"))
	require.NoError(t, err)
	require.Equal(t, "2\n", string(b))

	status, err = h.runner.Status(Name)
	require.NoError(t, err)
	require.False(t, status.Has(provision.Provisioned))

	// third invocation promotes the result
	require.Equal(t, module.Complete, h.provision(t))
	require.NoFileExists(t, h.path("temp-file"))
	b, err = os.ReadFile(h.path("final-file"))
	require.NoError(t, err)
	require.Equal(t, FinalContents, string(b))

	status, err = h.runner.Status(Name)
	require.NoError(t, err)
	require.True(t, status.Has(provision.Provisioned))
	require.False(t, status.Has(provision.Disabled))

	// a fourth call does not invoke the module
	require.Equal(t, module.Complete, h.provision(t))
	require.Empty(t, h.lines)
	require.NoFileExists(t, h.path("temp-file"))
}

func TestModule_NoQueryHandler(t *testing.T) {
	h := newHarness(t, nil)

	require.Equal(t, module.Incomplete, h.provision(t))
	for _, line := range h.lines {
		require.NotContains(t, line, "query")
	}
}

func TestModule_QueryAnswerIsEchoedVerbatim(t *testing.T) {
	h := newHarness(t, channel.AnswersQueryHandler(map[string]string{QueryKey: "wow%!"}))

	require.Equal(t, module.Incomplete, h.provision(t))
	require.Contains(t, h.lines, "info (selftest): query input was: wow%!")
	require.NotContains(t, h.lines, channel.FallbackLine)
}

func TestModule_QueryFailureIsReported(t *testing.T) {
	h := newHarness(t, channel.AnswersQueryHandler(map[string]string{}))

	require.Equal(t, module.Incomplete, h.provision(t))
	require.NotEmpty(t, h.lines)
	require.Contains(t, h.lines[len(h.lines)-1], "warn (selftest): query failed")
}

func TestModule_CorruptedMarker(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, os.MkdirAll(filepath.Join(h.root, "temp-file"), 0o700))
	require.NoError(t, os.WriteFile(h.path("temp-file"), []byte("garbage\n"), 0o600))

	require.Equal(t, module.Error, h.provision(t))
	require.Contains(t, h.lines, "warn (selftest): NV store corrupted")
	require.NoFileExists(t, h.path("final-file"))

	b, err := os.ReadFile(h.path("temp-file"))
	require.NoError(t, err)
	require.Equal(t, "garbage\n", string(b), "a corrupted store is left for inspection")
}

func TestModule_CorruptedMarkerCauseReachesWorkflow(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, os.MkdirAll(filepath.Join(h.root, "temp-file"), 0o700))
	require.NoError(t, os.WriteFile(h.path("temp-file"), []byte("garbage\n"), 0o600))

	report, err := h.runner.ProvisionAll(context.Background())
	require.NoError(t, err)
	require.Len(t, report.StepReports, 1)

	step := report.StepReports[0]
	require.Error(t, step.Error)
	require.Contains(t, step.Error.Error(), "unrecognised step marker")

	cause := errorx.Cast(step.Error)
	require.NotNil(t, cause)
	require.True(t, errorx.IsOfType(cause, provision.ProvisioningFailed))
	require.True(t, errorx.IsOfType(cause.Cause(), provision.StateCorruption))
}

func TestModule_DeprovisionAllowsReprovisioning(t *testing.T) {
	h := newHarness(t, nil)
	for i := 0; i < 3; i++ {
		h.provision(t)
	}

	require.NoError(t, h.runner.Deprovision(context.Background(), Name))
	require.NoFileExists(t, h.path("final-file"))

	status, err := h.runner.Status(Name)
	require.NoError(t, err)
	require.Zero(t, status)

	require.Equal(t, module.Incomplete, h.provision(t))
	require.Contains(t, h.lines, "info (selftest): creating NV store")
}

func TestModule_ChallengeResponseThroughRunner(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.runner.ChallengeResponse(Name, []byte("c"))
	require.True(t, errorx.IsOfType(err, provision.NotProvisioned))

	for i := 0; i < 3; i++ {
		h.provision(t)
	}

	_, err = h.runner.ChallengeResponse(Name, []byte("c"))
	require.True(t, errorx.IsOfType(err, module.Unsupported))
}
