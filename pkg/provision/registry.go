// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"github.com/joomcode/errorx"
)

// Registry holds the modules known to a driver in registration order. It is built once at startup and only read
// afterwards.
type Registry struct {
	modules []Module
}

// NewRegistry returns a registry holding mods.
func NewRegistry(mods ...Module) (*Registry, error) {
	r := &Registry{}
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends m. Names are expected to be unique; Lookup returns the first match if they are not.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return errorx.IllegalArgument.New("module cannot be nil")
	}

	if err := m.Info().Validate(); err != nil {
		return err
	}

	r.modules = append(r.modules, m)
	return nil
}

// List returns all modules in registration order. The returned slice is a copy.
func (r *Registry) List() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Lookup returns the first module whose name equals name exactly.
func (r *Registry) Lookup(name string) (Module, bool) {
	for _, m := range r.modules {
		if m.Info().Name == name {
			return m, true
		}
	}
	return nil, false
}
