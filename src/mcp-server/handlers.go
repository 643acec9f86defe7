// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"text/template"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/mcp-server/templates"
)

// instructionsData holds the values substituted into the embedded instructions template.
type instructionsData struct {
	ServerName  string
	Tools       []dispatch.ToolDescriptor
	ListTool    string
	FetchTool   string
	TaskNameArg string
	ToolPrefix  string
}

// genericTools returns the tools that exist regardless of the prompt catalog.
func genericTools(d *dispatch.Dispatcher) []dispatch.ToolDescriptor {
	var tools []dispatch.ToolDescriptor
	for _, t := range d.Tools() {
		if dispatch.Resolve(t.Name).Op != dispatch.OpFetchSynthesized {
			tools = append(tools, t)
		}
	}
	return tools
}

// loadInstructions renders the server instructions sent to MCP clients during initialization.
//
// Parameters:
//   - d: Dispatcher whose generic tools are listed in the instructions
//
// Returns:
//   - The rendered instructions text
//   - An error if the embedded template cannot be read, parsed or executed
//
// Per-prompt tools are described by their naming convention only, since the
// set changes with the prompts directory.
func loadInstructions(d *dispatch.Dispatcher) (string, error) {
	templateBytes, err := templates.MagicEmbed.ReadFile(templates.InstructionsFile)
	if err != nil {
		return "", fmt.Errorf("failed to load instructions template: %w", err)
	}

	tmpl, err := template.New("instructions").Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	data := instructionsData{
		ServerName:  ServerName,
		Tools:       genericTools(d),
		ListTool:    dispatch.ListToolName,
		FetchTool:   dispatch.FetchToolName,
		TaskNameArg: dispatch.TaskNameArg,
		ToolPrefix:  dispatch.ToolPrefix,
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	if err := tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}
	return buf.String(), nil
}
