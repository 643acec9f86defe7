// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// newVersionResourceHandler returns the handler for the version information resource.
//
// Parameters:
//   - d: Dispatcher whose generic tools are reported
//   - version: Server version string
//
// Returns:
//   - A resource handler producing JSON with the server name, version, the generic
//     tools and the prefix used for per-prompt tools
func newVersionResourceHandler(d *dispatch.Dispatcher, version string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tools := genericTools(d)
		names := make([]string, 0, len(tools))
		for _, t := range tools {
			names = append(names, t.Name)
		}

		versionInfo := map[string]any{
			"name":       ServerName,
			"version":    version,
			"type":       "MCP Server",
			"tools":      names,
			"toolPrefix": dispatch.ToolPrefix,
		}

		return jsonResource(VersionResourceURI, versionInfo, "version info")
	}
}

// newStatusResourceHandler returns the handler for the server status resource.
//
// The status includes server health, timestamp, version, the prompts directory,
// the current prompt names and runtime statistics from [CollectResourceUsage].
// The catalog is read on every request.
func newStatusResourceHandler(d *dispatch.Dispatcher, promptsDir, version string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		usage := CollectResourceUsage()

		statusInfo := map[string]any{
			"status":     "healthy",
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"server":     ServerName,
			"version":    version,
			"promptsDir": promptsDir,
			"prompts":    d.Names(),
			"runtime":    usage,
		}

		return jsonResource(StatusResourceURI, statusInfo, "status info")
	}
}

// newPromptResourceHandler returns the handler for the prompts://{task_name} template.
//
// The task name is taken verbatim from the URI and goes through the same
// validation and loading as the fetch tools, so percent-encoded names are rejected.
//
// Returns:
//   - A resource handler producing the prompt content as text/plain, or the
//     loader's error for invalid, missing and unreadable prompts
func newPromptResourceHandler(d *dispatch.Dispatcher) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		name, ok := strings.CutPrefix(uri, PromptResourceURIPrefix)
		if !ok {
			return nil, fmt.Errorf("unsupported resource URI: %s", uri)
		}

		res := d.FetchByName(name)
		if res.IsError() {
			if res.Err != nil {
				return nil, res.Err
			}
			return nil, errors.New(res.Text)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     res.Content,
			},
		}, nil
	}
}

// jsonResource marshals v as indented JSON resource contents for uri.
func jsonResource(uri string, v any, what string) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
