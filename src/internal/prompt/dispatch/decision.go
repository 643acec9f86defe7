// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package dispatch

import "strings"

// Tool names and the argument understood by the fetch tool.
const (
	ListToolName  = "list_available_prompts"
	FetchToolName = "get_prompt_by_name"
	ToolPrefix    = "get_prompt_"
	TaskNameArg   = "task_name"
)

// Op is the operation selected for an invoked tool name.
type Op int

const (
	OpUnknown Op = iota
	OpList
	OpFetchByName
	OpFetchSynthesized
)

// String returns the metrics label of the operation.
func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpFetchByName:
		return "fetch_by_name"
	case OpFetchSynthesized:
		return "fetch_synthesized"
	default:
		return "unknown"
	}
}

// Decision is the resolved form of an invoked tool name.
type Decision struct {
	Op   Op
	Tool string
	// Name is the prompt name recovered from a synthesized tool name.
	// It is unvalidated and may be empty.
	Name string
}

// Resolve classifies tool. The generic names win over the prefix rule,
// so "get_prompt_by_name" is never read as a prompt called "by_name".
func Resolve(tool string) Decision {
	switch tool {
	case ListToolName:
		return Decision{Op: OpList, Tool: tool}
	case FetchToolName:
		return Decision{Op: OpFetchByName, Tool: tool}
	}
	if name, ok := NameFromTool(tool); ok {
		return Decision{Op: OpFetchSynthesized, Tool: tool, Name: name}
	}
	return Decision{Op: OpUnknown, Tool: tool}
}

// SynthesizeToolName returns the per-prompt tool name for name.
func SynthesizeToolName(name string) string { return ToolPrefix + name }

// NameFromTool strips [ToolPrefix] from tool.
func NameFromTool(tool string) (string, bool) {
	return strings.CutPrefix(tool, ToolPrefix)
}
