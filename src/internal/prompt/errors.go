// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package prompt

import (
	"errors"
	"fmt"
)

// Kind classifies a [Library.Load] failure.
type Kind int

const (
	// KindNone is returned by KindOf for nil or foreign errors.
	KindNone Kind = iota
	// KindInvalidName means the name failed [IsValidName].
	KindInvalidName
	// KindNotFound means the name is valid but no regular file backs it.
	KindNotFound
	// KindIO means the backing file exists but could not be read as UTF-8 text.
	KindIO
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid_name"
	case KindNotFound:
		return "not_found"
	case KindIO:
		return "io_error"
	default:
		return "none"
	}
}

// Sentinel errors matched by [Error.Is].
var (
	ErrInvalidName = errors.New("invalid task name")
	ErrNotFound    = errors.New("prompt not found")
	ErrIO          = errors.New("error reading prompt file")
)

// Error is the typed failure returned by [Library.Load].
type Error struct {
	Kind Kind
	Name string
	// Err is the underlying filesystem or decoding error, if any.
	Err error
}

// Error returns the user-facing message for the failure.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidName:
		return fmt.Sprintf("Invalid task name: %s", e.Name)
	case KindNotFound:
		return fmt.Sprintf("Prompt not found for task: %s", e.Name)
	default:
		return fmt.Sprintf("Error reading prompt file for task: %s", e.Name)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidName:
		return e.Kind == KindInvalidName
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// KindOf extracts the [Kind] of err, or KindNone when err is not an [*Error].
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindNone
}
