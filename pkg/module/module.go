// SPDX-License-Identifier: Apache-2.0

// Package module holds the identity of a provisioning module and the outcome of a single provisioning invocation.
package module

import (
	"strings"

	"github.com/joomcode/errorx"
)

var (
	ErrNamespace = errorx.NewNamespace("module")
	InvalidInfo  = ErrNamespace.NewType("invalid_info")
	Unsupported  = ErrNamespace.NewType("unsupported", errorx.NotFound())
	NotFound     = ErrNamespace.NewType("not_found", errorx.NotFound())

	NameProperty = errorx.RegisterPrintableProperty("module")
)

// Info is the immutable description of a module. Name is the identity and must be unique within a registry.
type Info struct {
	Name        string `yaml:"name" json:"name"`
	Author      string `yaml:"author" json:"author"`
	Description string `yaml:"description" json:"description"`
}

// Validate checks that the module name can be used as a single path segment in the NV store layout.
func (i Info) Validate() error {
	switch {
	case i.Name == "":
		return InvalidInfo.New("module name cannot be empty")
	case i.Name == "." || i.Name == "..":
		return InvalidInfo.New("module name %q is reserved", i.Name).WithProperty(NameProperty, i.Name)
	case strings.ContainsAny(i.Name, "/\\\x00"):
		return InvalidInfo.New("module name %q contains a path separator or NUL", i.Name).
			WithProperty(NameProperty, i.Name)
	}

	return nil
}

func (i Info) String() string {
	return i.Name
}

// Result is returned by a provisioning entry point.
type Result int

const (
	// Incomplete means provisioning has to be invoked again, usually after the next reboot.
	Incomplete Result = iota
	// Complete means the final artifact has been committed.
	Complete
	// Error is terminal; the module reported the cause through the status channel.
	Error
)

func (r Result) String() string {
	switch r {
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	default:
		return "error"
	}
}

// Terminal reports whether a driver should stop invoking the module.
func (r Result) Terminal() bool {
	return r != Incomplete
}
