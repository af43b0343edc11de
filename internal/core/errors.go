// SPDX-License-Identifier: Apache-2.0

package core

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("puflib")

	IllegalArgument = ErrNamespace.NewType("illegal_argument")
	SetupFailed     = ErrNamespace.NewType("setup_failed")
)
