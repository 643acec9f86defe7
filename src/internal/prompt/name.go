// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package prompt

import (
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsValidName reports whether name is an acceptable prompt identifier.
//
// The whole string must match [A-Za-z0-9_]+ and must not contain "..".
// The input is checked exactly as received: no trimming, case folding or decoding.
func IsValidName(name string) bool {
	if !namePattern.MatchString(name) {
		return false
	}
	// Second gate, kept even though the character class already excludes '.'.
	return !strings.Contains(name, "..")
}
