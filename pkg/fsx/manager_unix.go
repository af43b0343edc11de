// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package fsx

import (
	"io"
	"os"
	"path/filepath"

	"github.com/joomcode/errorx"
	"golang.org/x/sys/unix"
)

const (
	// defaultFileMode is the file mode used when creating store files. Store contents are secrets.
	defaultFileMode = 0600
	// defaultDirectoryMode is the default directory mode used when creating directories.
	defaultDirectoryMode = 0700
)

type Option func(*unixManager) error

type unixManager struct {
	fileMode os.FileMode
	dirMode  os.FileMode
}

func NewManager(opts ...Option) (Manager, error) {
	manager := &unixManager{
		fileMode: defaultFileMode,
		dirMode:  defaultDirectoryMode,
	}

	for _, opt := range opts {
		if err := opt(manager); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

// WithFileMode overrides the permission bits used for newly created files.
func WithFileMode(mode os.FileMode) Option {
	return func(manager *unixManager) error {
		if mode&^os.ModePerm != 0 {
			return errorx.IllegalArgument.New("file mode %o contains non permission bits", mode)
		}
		manager.fileMode = mode
		return nil
	}
}

// WithDirectoryMode overrides the permission bits used for newly created directories.
func WithDirectoryMode(mode os.FileMode) Option {
	return func(manager *unixManager) error {
		if mode&^os.ModePerm != 0 {
			return errorx.IllegalArgument.New("directory mode %o contains non permission bits", mode)
		}
		manager.dirMode = mode
		return nil
	}
}

func (m *unixManager) PathExists(path string) (os.FileInfo, bool, error) {
	pi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return pi, true, nil
}

func (m *unixManager) isDirectory(path string) bool {
	pi, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return false
	}

	return pi.Mode().IsDir()
}

func (m *unixManager) CheckAccess(path string, dir bool) error {
	fi, err := os.Stat(path)
	if err != nil {
		return classify(err, path, "failed to stat %q", path)
	}

	if dir && !fi.IsDir() {
		return FileTypeError.New("path %q is not a directory", path).WithProperty(PathProperty, path)
	}

	if !dir && !fi.Mode().IsRegular() {
		return FileTypeError.New("path %q is not a regular file", path).WithProperty(PathProperty, path)
	}

	mode := uint32(unix.R_OK | unix.W_OK)
	if dir {
		mode |= unix.X_OK
	}

	if err := unix.Access(path, mode); err != nil {
		return classify(err, path, "path %q is not accessible", path)
	}

	return nil
}

func (m *unixManager) CreateDirectory(path string, recursive bool) error {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return FileSystemError.New("invalid path %q", path).WithUnderlyingErrors(err)
	}

	if exists {
		if !fi.IsDir() {
			return FileTypeError.New("path %q exists and is not a directory", path).WithProperty(PathProperty, path)
		}
		return nil
	}

	parentDir := filepath.Dir(path)
	if !recursive && !m.isDirectory(parentDir) {
		return FileNotFound.New("parent path %q not found", parentDir).WithProperty(PathProperty, parentDir)
	}

	if recursive {
		err = os.MkdirAll(path, m.dirMode)
	} else {
		err = os.Mkdir(path, m.dirMode)
	}

	if err != nil {
		return classify(err, path, "failed to create a directory %q", path)
	}

	return nil
}

func (m *unixManager) CreateFile(path string, exclusive bool) error {
	flags := os.O_RDWR | os.O_CREATE
	if exclusive {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, m.fileMode)
	if err != nil {
		return classify(err, path, "failed to create file %q", path)
	}

	if err := f.Close(); err != nil {
		return FileSystemError.Wrap(err, "failed to close file %q", path).WithProperty(PathProperty, path)
	}

	return nil
}

func (m *unixManager) ReadFile(path string, maxFileSize int64) ([]byte, error) {
	fileInfo, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return nil, FileNotFound.New("path %q not found", path).WithProperty(PathProperty, path)
	}

	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, errorx.IllegalArgument.New("file size is larger than %d bytes", maxFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, classify(err, path, "failed to open file at %q", path)
	}
	defer Close(file)

	buffer, err := io.ReadAll(file)
	if err != nil {
		return nil, FileSystemError.Wrap(err, "failed to read from file %q", path).WithProperty(PathProperty, path)
	}

	return buffer, nil
}

func (m *unixManager) WriteFile(path string, payload []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, m.fileMode)
	if err != nil {
		return classify(err, path, "failed to open file at %q", path)
	}
	defer Close(file)

	n, err := file.Write(payload)
	if err != nil {
		return FileSystemError.Wrap(err, "failed to write to file %q", path).WithProperty(PathProperty, path)
	}

	if n != len(payload) {
		return FileSystemError.New("failed to write full payload to file %q", path).WithProperty(PathProperty, path)
	}

	if err := file.Sync(); err != nil {
		return FileSystemError.Wrap(err, "failed to sync file %q", path).WithProperty(PathProperty, path)
	}

	return nil
}

func (m *unixManager) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return classify(err, path, "failed to remove %q", path)
	}

	return nil
}

func (m *unixManager) RemoveTree(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return classify(err, path, "failed to stat %q", path)
	}

	if !fi.IsDir() {
		return FileTypeError.New("path %q is not a directory", path).WithProperty(PathProperty, path)
	}

	return m.removeTree(path)
}

// removeTree never follows symbolic links; a link is removed like a file.
func (m *unixManager) removeTree(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return classify(err, dir, "failed to open directory %q", dir)
	}

	names, err := d.Readdirnames(-1)
	Close(d)
	if err != nil {
		return classify(err, dir, "failed to list directory %q", dir)
	}

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}

		child := filepath.Join(dir, name)
		fi, err := os.Lstat(child)
		if err != nil {
			if isNotExist(err) {
				continue
			}
			return classify(err, child, "failed to stat %q", child)
		}

		if fi.IsDir() {
			if err := m.removeTree(child); err != nil {
				return err
			}
			continue
		}

		if err := os.Remove(child); err != nil {
			return classify(err, child, "failed to remove %q", child)
		}
	}

	if err := os.Remove(dir); err != nil {
		return classify(err, dir, "failed to remove directory %q", dir)
	}

	return nil
}
