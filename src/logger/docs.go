// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable diagnostics and StructuredLogger for JSON lines tagged with a
// level and component. Both write to standard error by default so they never
// interleave with the MCP protocol stream on standard output. Both implementations
// are safe for concurrent use, and StructuredLogger encodes through pooled buffers.
package logger
