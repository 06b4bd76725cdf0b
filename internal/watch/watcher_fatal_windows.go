// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 error codes that leave the watcher in an unrecoverable state.
const (
	// ERROR_TOO_MANY_OPEN_FILES: per-process handle limit exceeded.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE: the watched directory handle went away,
	// usually because the directory was deleted or unmounted.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY: no room for the ReadDirectoryChangesW
	// notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// isFatalFsnotifyError reports whether err means the watcher cannot
// recover.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
