// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
//
// It holds the markdown template rendered into the MCP server instructions, the
// cobra help text for the command line, and the JSON Schema that configuration
// files are validated against. [MagicEmbed] is the shared [EmbedFS] instance.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/mcp-prompt-server/src/mcp-server/templates"
//
//	entries, err := templates.MagicEmbed.ReadDir(".")
//	if err != nil {
//		return fmt.Errorf("failed to list templates: %w", err)
//	}
package templates
