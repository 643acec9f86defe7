// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package dispatch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToolDescriptor advertises one callable tool.
type ToolDescriptor struct {
	Name        string
	Title       string
	Description string
	// TaskName marks tools that take the required "task_name" string argument.
	TaskName bool
}

const (
	listDescription  = "Lists all available prompt templates that can be fetched. Use this to discover what prompts are available."
	fetchDescription = "Fetches a specific prompt template by its task name. Use this when you know the exact name of the prompt you want."
	// TaskNameDescription documents the task_name argument.
	TaskNameDescription = "The name of the task/prompt to fetch (e.g., 'create_prd', 'review_tasks')"
)

// Tools returns the tool set for the current catalog: the list tool, one fetch
// tool per prompt in catalog order, then the fetch-by-name tool.
func (d *Dispatcher) Tools() []ToolDescriptor {
	names := d.catalog.List()

	tools := make([]ToolDescriptor, 0, len(names)+2)
	tools = append(tools, ToolDescriptor{
		Name:        ListToolName,
		Title:       "List Available Prompts",
		Description: listDescription,
	})
	for _, name := range names {
		tools = append(tools, synthesizedTool(name))
	}
	tools = append(tools, ToolDescriptor{
		Name:        FetchToolName,
		Title:       "Get Prompt By Name",
		Description: fetchDescription,
		TaskName:    true,
	})
	return tools
}

func synthesizedTool(name string) ToolDescriptor {
	words := strings.ReplaceAll(name, "_", " ")
	return ToolDescriptor{
		Name:  SynthesizeToolName(name),
		Title: "Get " + cases.Title(language.English).String(words) + " Prompt",
		Description: fmt.Sprintf(
			"Fetches the '%s' prompt template. This provides a structured template for %s tasks.",
			name, words,
		),
	}
}
