// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is used whenever the executable name cannot be derived from os.Args.
const DefaultName = "mcp-prompt-server"

// GetExecutableName returns the executable name without extension, cross-platform compatible.
// It extracts the base name from os.Args[0] and removes the .exe suffix so the
// name reads the same in CLI usage strings on every OS.
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return DefaultName
	}

	name := filepath.Base(os.Args[0])

	// A foreign separator (Windows path on Unix, or the reverse) survives filepath.Base.
	if strings.ContainsAny(name, `\/`) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}

// ExecutablePath returns the absolute, symlink-resolved path of the running binary.
//
// Returns:
//   - string: Absolute path of the executable
//   - error: Any error from [os.Executable] or symlink resolution
func ExecutablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// ExecutableDir returns the directory holding the running binary.
// It falls back to the current working directory, and finally ".",
// when the executable cannot be located.
func ExecutableDir() string {
	if exe, err := ExecutablePath(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
