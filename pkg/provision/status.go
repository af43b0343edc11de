// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"strings"

	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
)

// Status describes what the persisted artifacts of a module say about it. It is recomputed on every call.
type Status uint8

const (
	// Provisioned is set when a final store or a disabled marker exists.
	Provisioned Status = 1 << iota
	// Disabled is set when a disabled marker exists. A disabled module is always Provisioned as well.
	Disabled

	// StatusError is returned together with an error when the status could not be determined. It is distinct from
	// the zero value, which means neither provisioned nor disabled.
	StatusError Status = 0x80
)

// Has reports whether all bits of flag are set.
func (s Status) Has(flag Status) bool {
	return s != StatusError && s&flag == flag
}

func (s Status) String() string {
	if s == StatusError {
		return "error"
	}

	if s == 0 {
		return "unprovisioned"
	}

	var parts []string
	if s&Provisioned != 0 {
		parts = append(parts, "provisioned")
	}
	if s&Disabled != 0 {
		parts = append(parts, "disabled")
	}
	return strings.Join(parts, "|")
}

var statusTypes = []nvstore.Type{nvstore.FinalFile, nvstore.FinalDir, nvstore.DisabledFile, nvstore.DisabledDir}

// Inspect infers the status of module m from its final stores and disabled markers. All four paths are resolved
// before any of them is probed; a resolution failure yields StatusError and never a partial result.
func Inspect(store *nvstore.Store, m module.Info) (Status, error) {
	for _, t := range statusTypes {
		if _, err := store.Resolver().Resolve(m.Name, t); err != nil {
			return StatusError, err
		}
	}

	present := make(map[nvstore.Type]bool, len(statusTypes))
	for _, t := range statusTypes {
		_, err := store.Get(m, t)
		switch {
		case err == nil:
			present[t] = true
		case nvstore.IsAbsent(err):
			present[t] = false
		default:
			return StatusError, err
		}
	}

	var status Status
	if present[nvstore.DisabledFile] || present[nvstore.DisabledDir] {
		status |= Provisioned | Disabled
	}

	if present[nvstore.FinalFile] || present[nvstore.FinalDir] {
		status |= Provisioned
	}

	return status, nil
}

// Deprovision removes the final stores of module m. Stores that are not present are skipped; the first removal
// that fails aborts the operation. Disabled markers and temporary stores are left alone.
func Deprovision(store *nvstore.Store, m module.Info) error {
	for _, t := range []nvstore.Type{nvstore.FinalFile, nvstore.FinalDir} {
		if _, err := store.Get(m, t); err != nil {
			if nvstore.IsAbsent(err) {
				continue
			}
			return err
		}

		if err := store.Delete(m, t); err != nil {
			return err
		}
	}

	return nil
}
