// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"errors"
	"os"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
)

// Close closes f and logs a failure instead of returning it. Use it only where the data has already been
// synced or was only read.
func Close(f *os.File) {
	if f == nil {
		return
	}

	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logx.As().Error().Err(errorx.Decorate(err, "failed to close file %q", f.Name())).Msg("close failed")
	}
}
