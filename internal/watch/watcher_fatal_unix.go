// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports whether err means the watcher cannot
// recover. On Linux these are the inotify resource-exhaustion errors:
// ENOSPC (watch limit), EMFILE and ENFILE (descriptor limits).
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
