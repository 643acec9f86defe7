// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server and command line for the prompt library.
//
// It serves a directory of plain-text prompt templates as [MCP] tools over stdio and,
// through the "http" subcommand, as a JSON API. Tool listings are rebuilt from the
// prompts directory on every request: the generic list_available_prompts and
// get_prompt_by_name tools plus one get_prompt_<name> tool per prompt file.
// The package uses a builder pattern for server construction and cobra for the CLI.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
