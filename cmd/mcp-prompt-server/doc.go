// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// mcp-prompt-server serves a directory of plain-text prompt templates to
// Model Context Protocol (MCP) clients over stdio, and to any HTTP client
// over a small JSON API.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/mcp-prompt-server/cmd/mcp-prompt-server@latest
//
// # Usage
//
//	mcp-prompt-server [FLAGS]
//	mcp-prompt-server http [--addr :8000] [FLAGS]
//	mcp-prompt-server list [FLAGS]
//	mcp-prompt-server generate-config [FLAGS]
//
// # Flags
//
//	--prompts-dir   Directory holding <name>.txt prompt files
//	--config        Path to configuration file (JSON or YAML)
//	--env-file      Path to a .env file loaded before configuration (default ".env")
//	--instructions  Print the instructions sent to MCP clients
//	--help          Show help information
//	--version       Show version information
//
// # Environment Variables
//
//	MCP_PROMPTS_CONFIG_FILE  Path to configuration file (alternative to --config flag)
//	MCP_PROMPTS_DIR          Prompts directory
//	MCP_PROMPTS_HTTP_ADDR    Listen address for the http subcommand
//
// # MCP Tools
//
//   - list_available_prompts: List the prompt names currently in the directory
//   - get_prompt_by_name: Fetch a prompt by its task_name argument
//   - get_prompt_<name>: One tool per prompt file, rebuilt on every listing
//
// # MCP Resources
//
//   - info://version: Version and tool naming convention
//   - status://server-status: Health, prompts directory and runtime statistics
//   - prompts://{task_name}: Raw prompt text
//
// # HTTP API
//
//	GET /api/v1/prompts/{task_name}  {"prompt_text": "..."} or {"detail": "..."}
//	GET /api/v1/prompts              {"prompts": [...]}
//	GET /healthz                     {"status": "ok"}
//	GET /metrics                     Prometheus exposition
package main
