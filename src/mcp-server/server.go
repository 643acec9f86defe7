// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the prompt server.
//
// Returns:
//   - string: The current server version (e.g., "0.1.0")
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run builds the command line and executes it with the process arguments.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.1.0")
//
// Returns:
//   - error: Configuration, startup check, or transport errors; nil after a
//     graceful shutdown
//
// Without a subcommand the stdio MCP server is started. See [CLIFramework]
// for the "http", "list" and "generate-config" subcommands.
func Run(version string) error {
	appVersion = version

	return NewCLIFramework("", version).BuildRootCommand().Execute()
}
