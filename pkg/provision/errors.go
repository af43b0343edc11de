// SPDX-License-Identifier: Apache-2.0

package provision

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("provision")
	// StateCorruption marks a persisted step marker that no step of the module recognises.
	StateCorruption     = ErrNamespace.NewType("state_corruption")
	HardwareUnsupported = ErrNamespace.NewType("hardware_unsupported")
	NotProvisioned      = ErrNamespace.NewType("not_provisioned", errorx.NotFound())
	ModuleDisabled      = ErrNamespace.NewType("module_disabled")
	LockFailed          = ErrNamespace.NewType("lock_failed")
	ProvisioningFailed  = ErrNamespace.NewType("provisioning_failed")
)
