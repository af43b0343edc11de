// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace   = errorx.NewNamespace("fsx")
	FileAlreadyExists = ErrorsNamespace.NewType("file_already_exists", errorx.Duplicate())
	FileNotFound      = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())
	FileSystemError   = ErrorsNamespace.NewType("filesystem_error")
	FileTypeError     = ErrorsNamespace.NewType("file_type_error")
	PermissionDenied  = ErrorsNamespace.NewType("permission_denied")

	PathProperty = errorx.RegisterPrintableProperty("path")
)

// classify maps an os level error to one of the fsx error types.
func classify(err error, path string, format string, args ...interface{}) *errorx.Error {
	var t *errorx.Type
	switch {
	case errors.Is(err, fs.ErrNotExist):
		t = FileNotFound
	case errors.Is(err, fs.ErrExist):
		t = FileAlreadyExists
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		t = PermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		t = FileTypeError
	default:
		t = FileSystemError
	}

	return t.Wrap(err, format, args...).WithProperty(PathProperty, path)
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || errorx.IsOfType(err, FileNotFound)
}
