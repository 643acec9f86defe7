// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs served by the MCP server.
const (
	VersionResourceURI      = "info://version"
	StatusResourceURI       = "status://server-status"
	PromptResourceURIPrefix = "prompts://"
	PromptResourceTemplate  = PromptResourceURIPrefix + "{" + dispatch.TaskNameArg + "}"
)

// createResources creates the static resources for the MCP server.
//
// Parameters:
//   - d: Dispatcher used to report the current catalog
//   - promptsDir: Prompts directory reported by the status resource
//   - version: Server version reported by both resources
//
// Returns:
//   - A slice of server resources ready for ServerBuilder.WithResources
func createResources(d *dispatch.Dispatcher, promptsDir, version string) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				VersionResourceURI,
				"Server Version Information",
				mcp.WithResourceDescription("Server name, version and tool naming convention"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: newVersionResourceHandler(d, version),
		},
		{
			Resource: mcp.NewResource(
				StatusResourceURI,
				"Server Status",
				mcp.WithResourceDescription("Health, prompts directory, available prompts and runtime statistics"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: newStatusResourceHandler(d, promptsDir, version),
		},
	}
}

// createResourceTemplates creates the parameterised resources for the MCP server.
// prompts://{task_name} returns the raw text of one prompt.
func createResourceTemplates(d *dispatch.Dispatcher) []server.ServerResourceTemplate {
	return []server.ServerResourceTemplate{
		{
			Template: mcp.NewResourceTemplate(
				PromptResourceTemplate,
				"Prompt Template",
				mcp.WithTemplateDescription("The raw text of the prompt template with the given task name"),
				mcp.WithTemplateMIMEType("text/plain"),
			),
			Handler: newPromptResourceHandler(d),
		},
	}
}
