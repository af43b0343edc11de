// SPDX-License-Identifier: Apache-2.0

package nvstore

import (
	"path/filepath"

	"github.com/hashgraph/puf-provisioner/pkg/module"
)

// Resolver composes store paths of the form <root>/<category>/<module>. It never touches the filesystem.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at root, which must be an absolute path.
func NewResolver(root string) (Resolver, error) {
	if root == "" {
		return Resolver{}, PathError.New("store root cannot be empty")
	}

	if !filepath.IsAbs(root) {
		return Resolver{}, PathError.New("store root must be absolute: %s", root)
	}

	return Resolver{root: filepath.Clean(root)}, nil
}

// Root returns the cleaned root directory.
func (r Resolver) Root() string {
	return r.root
}

// Resolve returns the path of the store of type t owned by the named module. Module names must be a single path
// segment, which keeps paths of distinct modules apart.
func (r Resolver) Resolve(moduleName string, t Type) (string, error) {
	if r.root == "" {
		return "", PathError.New("resolver is not initialized")
	}

	if !t.Valid() {
		return "", PathError.New("unknown store type %d", int(t)).
			WithProperty(ModuleProperty, moduleName)
	}

	if err := (module.Info{Name: moduleName}).Validate(); err != nil {
		return "", PathError.Wrap(err, "cannot resolve %s store", t).
			WithProperty(ModuleProperty, moduleName).
			WithProperty(TypeProperty, t.String())
	}

	return filepath.Join(r.root, t.String(), moduleName), nil
}
