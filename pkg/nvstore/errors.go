// SPDX-License-Identifier: Apache-2.0

package nvstore

import (
	"github.com/hashgraph/puf-provisioner/pkg/fsx"
	"github.com/joomcode/errorx"
)

var (
	ErrNamespace = errorx.NewNamespace("nvstore")
	// PathError is returned when a store path cannot be composed.
	PathError = ErrNamespace.NewType("path_error")
	// AccessDenied is returned when a store is absent or cannot be accessed with the mode its type requires.
	AccessDenied = ErrNamespace.NewType("access_denied", errorx.NotFound())
	// AlreadyExists is returned by Create when the store is already present.
	AlreadyExists = ErrNamespace.NewType("already_exists", errorx.Duplicate())
	// IOFailure is returned when a create, write or remove call on the filesystem fails.
	IOFailure = ErrNamespace.NewType("io_failure")

	ModuleProperty = errorx.RegisterPrintableProperty("nvstore_module")
	TypeProperty   = errorx.RegisterPrintableProperty("nvstore_type")
)

// IsAbsent reports whether err means that the store does not exist or could not be reached.
func IsAbsent(err error) bool {
	return errorx.IsOfType(err, AccessDenied)
}

// translate converts an fsx error into the store taxonomy. Missing artifacts surface as AccessDenied.
func translate(err error, format string, args ...interface{}) *errorx.Error {
	switch {
	case errorx.IsOfType(err, fsx.FileAlreadyExists):
		return AlreadyExists.Wrap(err, format, args...)
	case errorx.IsOfType(err, fsx.FileNotFound), errorx.IsOfType(err, fsx.PermissionDenied):
		return AccessDenied.Wrap(err, format, args...)
	default:
		return IOFailure.Wrap(err, format, args...)
	}
}
