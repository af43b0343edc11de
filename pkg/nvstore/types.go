// SPDX-License-Identifier: Apache-2.0

package nvstore

// Type selects one of the store artifacts a module may own.
type Type int

const (
	TempFile Type = iota
	TempDir
	FinalFile
	FinalDir
	// DisabledFile and DisabledDir are markers created by external policy. Their presence marks a module as
	// provisioned and inert.
	DisabledFile
	DisabledDir
)

var categories = map[Type]string{
	TempFile:     "temp-file",
	TempDir:      "temp-dir",
	FinalFile:    "final-file",
	FinalDir:     "final-dir",
	DisabledFile: "disabled-file",
	DisabledDir:  "disabled-dir",
}

// AllTypes returns every store type in declaration order.
func AllTypes() []Type {
	return []Type{TempFile, TempDir, FinalFile, FinalDir, DisabledFile, DisabledDir}
}

// IsDir reports whether the store is a directory tree rather than a single file.
func (t Type) IsDir() bool {
	return t == TempDir || t == FinalDir || t == DisabledDir
}

// Valid reports whether t is one of the declared store types.
func (t Type) Valid() bool {
	_, ok := categories[t]
	return ok
}

// String returns the category segment used in the store layout.
func (t Type) String() string {
	if c, ok := categories[t]; ok {
		return c
	}
	return "unknown"
}
