// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helpers for locating the running executable.
//
// The prompt server uses them in three places: the CLI usage line (GetExecutableName),
// the default prompts directory that sits next to the binary (ExecutableDir), and the
// client configuration emitted by generate-config (ExecutablePath).
//
// Cross-platform behavior of GetExecutableName:
//
//   - Linux/macOS: "/usr/bin/mcp-prompt-server" → "mcp-prompt-server"
//   - Windows: "C:\bin\mcp-prompt-server.exe" → "mcp-prompt-server"
//   - Fallback: empty args → "mcp-prompt-server"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
