// SPDX-License-Identifier: Apache-2.0

// Package sanity validates operator supplied configuration values before they reach the NV store.
package sanity

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"
)

var (
	// shellMetachars are rejected outright in store and lock paths.
	shellMetachars = regexp.MustCompile(`[;&|$\x60<>(){}[\]*?~]`)

	// Allows: alphanumeric, forward slash, dash, underscore, dot
	validPathChars = regexp.MustCompile(`^[a-zA-Z0-9/_.\-]+$`)

	// Query keys are matched after viper lowercases configuration keys.
	validQueryKey = regexp.MustCompile(`^[a-z0-9][a-z0-9_.\-]*$`)
)

// SanitizePath validates a directory path used as a store root or lock directory and returns it cleaned.
//
// The path must be absolute, must not contain ".." segments, shell metacharacters or anything outside
// [a-zA-Z0-9/_.-], and must not be the filesystem root.
func SanitizePath(path string) (string, error) {
	if path == "" {
		return "", errorx.IllegalArgument.New("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errorx.IllegalArgument.New("path must be absolute: %s", path)
	}

	// checked before cleaning, which would silently resolve the segment
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "", errorx.IllegalArgument.New("path cannot contain '..' segments: %s", path)
		}
	}

	if shellMetachars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains shell metacharacters: %s", path)
	}

	if !validPathChars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains invalid characters: %s", path)
	}

	cleaned := filepath.Clean(path)
	if cleaned == "/" {
		return "", errorx.IllegalArgument.New("path cannot be the filesystem root")
	}

	return cleaned, nil
}

// QueryKey validates the key of a preconfigured query answer.
func QueryKey(key string) error {
	if !validQueryKey.MatchString(key) {
		return errorx.IllegalArgument.New("invalid query key %q: use lowercase letters, digits, '_', '.' or '-'", key)
	}
	return nil
}
