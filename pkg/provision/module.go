// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"github.com/hashgraph/puf-provisioner/pkg/module"
)

// Module is the contract a provisioning module implements.
type Module interface {
	// Info returns the immutable description of the module.
	Info() module.Info
	// IsHardwareSupported reports whether the hardware this module drives is present.
	IsHardwareSupported() bool
	// Provision runs one step of the provisioning state machine. It is invoked once per process run until it
	// returns module.Complete or module.Error, so all progress must be persisted through ctx.Store().
	Provision(ctx *Context) module.Result
	// ChallengeResponse answers a challenge with the provisioned secret. Modules without the capability return an
	// error of type module.Unsupported.
	ChallengeResponse(challenge []byte) ([]byte, error)
}
