// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"os"
)

// Manager provides an operating system independent interface for managing files and directories.
type Manager interface {
	// PathExists determines if the source path exists. This method does not follow symlinks.
	PathExists(path string) (os.FileInfo, bool, error)
	// CheckAccess verifies that the path exists, matches the requested kind (directory or regular file) and is
	// accessible for reading and writing by the current process. Directories additionally require search access.
	CheckAccess(path string, dir bool) error
	// CreateDirectory creates a directory at the path specified by the path argument.
	// If the path argument refers to an existing directory, then no action is taken and no error is returned.
	// If the path argument refers to an existing file, then an error is returned.
	// If the path argument refers to a non-existent parent path, then an error is returned unless
	// the recursive argument is true.
	CreateDirectory(path string, recursive bool) error
	// CreateFile creates an empty file opened for reading and writing and closes it again.
	// When exclusive is true an existing file results in a FileAlreadyExists error; otherwise an existing file is
	// left untouched. The parent directory must already exist.
	CreateFile(path string, exclusive bool) error
	// ReadFile reads whole file as long as it's size is less than the maxFileSize argument.
	// A negative maxFileSize will disable the file size check.
	ReadFile(path string, maxFileSize int64) ([]byte, error)
	// WriteFile replaces the contents of an existing file with payload. The file is not created.
	WriteFile(path string, payload []byte) error
	// Remove removes a single file or an empty directory.
	Remove(path string) error
	// RemoveTree removes the directory at path together with everything below it. Entries are removed depth
	// first and the walk stops at the first entry that cannot be removed; nothing is restored in that case.
	RemoveTree(path string) error
}
