// SPDX-License-Identifier: MPL-2.0

// Package fspath provides path-string helpers shared across the build
// pipeline: target-platform separator rewriting for generated artifacts and
// small existence checks used by discovery and the configuration reader.
package fspath

import (
	"os"
	"strings"
)

// Platform identifiers accepted by ForPlatform.
const (
	Unix    = "unix"
	Windows = "windows"
)

// ForPlatform rewrites the separators of path for the given target platform.
// Generated server configs and settings documents embed paths for the machine
// the platform will run on, which is not necessarily the build host.
func ForPlatform(path, platform string) string {
	if platform == Windows {
		return strings.ReplaceAll(path, "/", "\\")
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// EscapeBackslashes doubles every backslash in path. Required whenever a
// Windows-style path is spliced into a JSON or regex context in a generated
// file.
func EscapeBackslashes(path string) string {
	return strings.ReplaceAll(path, "\\", "\\\\")
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}
