// SPDX-License-Identifier: Apache-2.0

package nvstore

import (
	"path/filepath"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/puf-provisioner/pkg/fsx"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/joomcode/errorx"
)

// maxStoreFileSize bounds ReadFile so a corrupted store cannot exhaust memory.
const maxStoreFileSize = 1 << 20

type Option func(*Store) error

// Store manages the non-volatile artifacts of modules below a single root directory.
//
// Store performs no locking. Two processes creating the same store race between the existence check and the
// creation; callers that need mutual exclusion take a lock around the whole provisioning invocation.
type Store struct {
	resolver Resolver
	fm       fsx.Manager
}

// NewStore returns a store rooted at root.
func NewStore(root string, opts ...Option) (*Store, error) {
	r, err := NewResolver(root)
	if err != nil {
		return nil, err
	}

	s := &Store{resolver: r}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.fm == nil {
		fm, err := fsx.NewManager()
		if err != nil {
			return nil, err
		}
		s.fm = fm
	}

	return s, nil
}

// WithFileManager replaces the filesystem backend.
func WithFileManager(fm fsx.Manager) Option {
	return func(s *Store) error {
		if fm == nil {
			return errorx.IllegalArgument.New("file manager cannot be nil")
		}
		s.fm = fm
		return nil
	}
}

// Resolver returns the path resolver used by the store.
func (s *Store) Resolver() Resolver {
	return s.resolver
}

// Create creates the store of type t for module m and returns its path.
//
// Directory stores are created exclusively: an accessible directory yields AlreadyExists. Missing ancestors are
// created first. File stores get their parent chain created and are then created exclusively and closed, so the
// caller reopens the returned path as needed.
func (s *Store) Create(m module.Info, t Type) (string, error) {
	p, err := s.resolver.Resolve(m.Name, t)
	if err != nil {
		return "", err
	}

	if t.IsDir() {
		if s.fm.CheckAccess(p, true) == nil {
			return "", AlreadyExists.New("%s store of module %q already exists", t, m.Name).
				WithProperty(fsx.PathProperty, p).
				WithProperty(ModuleProperty, m.Name).
				WithProperty(TypeProperty, t.String())
		}

		if err := s.fm.CreateDirectory(p, true); err != nil {
			return "", translate(err, "failed to create %s store of module %q", t, m.Name).
				WithProperty(ModuleProperty, m.Name).
				WithProperty(TypeProperty, t.String())
		}
	} else {
		if err := s.fm.CreateDirectory(filepath.Dir(p), true); err != nil {
			return "", IOFailure.Wrap(err, "failed to create parent of %s store of module %q", t, m.Name).
				WithProperty(ModuleProperty, m.Name).
				WithProperty(TypeProperty, t.String())
		}

		if err := s.fm.CreateFile(p, true); err != nil {
			return "", translate(err, "failed to create %s store of module %q", t, m.Name).
				WithProperty(ModuleProperty, m.Name).
				WithProperty(TypeProperty, t.String())
		}
	}

	logx.As().Debug().
		Str("module", m.Name).
		Str("type", t.String()).
		Str("path", p).
		Msg("Created NV store")

	return p, nil
}

// Get returns the path of the store of type t for module m if it is currently accessible.
func (s *Store) Get(m module.Info, t Type) (string, error) {
	p, err := s.resolver.Resolve(m.Name, t)
	if err != nil {
		return "", err
	}

	if err := s.fm.CheckAccess(p, t.IsDir()); err != nil {
		return "", AccessDenied.Wrap(err, "%s store of module %q is not accessible", t, m.Name).
			WithProperty(ModuleProperty, m.Name).
			WithProperty(TypeProperty, t.String())
	}

	return p, nil
}

// Delete removes the store of type t for module m. Directory stores are removed recursively and the removal stops
// at the first entry that cannot be deleted, leaving the rest in place. A store that does not exist yields
// AccessDenied; use IsAbsent to treat that as success.
func (s *Store) Delete(m module.Info, t Type) error {
	p, err := s.resolver.Resolve(m.Name, t)
	if err != nil {
		return err
	}

	if t.IsDir() {
		err = s.fm.RemoveTree(p)
	} else {
		err = s.fm.Remove(p)
	}

	if err != nil {
		return translate(err, "failed to delete %s store of module %q", t, m.Name).
			WithProperty(ModuleProperty, m.Name).
			WithProperty(TypeProperty, t.String())
	}

	logx.As().Debug().
		Str("module", m.Name).
		Str("type", t.String()).
		Str("path", p).
		Msg("Deleted NV store")

	return nil
}

// ReadFile returns the contents of an existing file store.
func (s *Store) ReadFile(m module.Info, t Type) ([]byte, error) {
	if t.IsDir() {
		return nil, errorx.IllegalArgument.New("%s store is not a file", t)
	}

	p, err := s.Get(m, t)
	if err != nil {
		return nil, err
	}

	b, err := s.fm.ReadFile(p, maxStoreFileSize)
	if err != nil {
		return nil, translate(err, "failed to read %s store of module %q", t, m.Name).
			WithProperty(ModuleProperty, m.Name).
			WithProperty(TypeProperty, t.String())
	}

	return b, nil
}

// WriteFile replaces the contents of an existing file store. It never creates the store.
func (s *Store) WriteFile(m module.Info, t Type, data []byte) error {
	if t.IsDir() {
		return errorx.IllegalArgument.New("%s store is not a file", t)
	}

	p, err := s.Get(m, t)
	if err != nil {
		return err
	}

	if err := s.fm.WriteFile(p, data); err != nil {
		return translate(err, "failed to write %s store of module %q", t, m.Name).
			WithProperty(ModuleProperty, m.Name).
			WithProperty(TypeProperty, t.String())
	}

	return nil
}
