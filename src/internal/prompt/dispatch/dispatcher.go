// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/metrics"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt"
)

// Catalog enumerates the available prompt names.
type Catalog interface {
	List() []string
}

// Loader returns the content of one prompt.
// Failures should be [*prompt.Error] values; anything else is reported as unexpected.
type Loader interface {
	Load(name string) (string, error)
}

// Outcome classifies a [Result].
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeInvalidIdentifier Outcome = "invalid_identifier"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeIOError           Outcome = "io_error"
	OutcomeMissingParameter  Outcome = "missing_parameter"
	OutcomeUnknownOperation  Outcome = "unknown_operation"
	OutcomeUnexpected        Outcome = "unexpected"
)

// Result is the transport-neutral answer to one operation.
type Result struct {
	Outcome Outcome
	// Text is the user-facing message, including error messages.
	Text string
	// Content is the raw prompt content on a successful fetch.
	Content string
	// Names is the catalog listing on a successful list.
	Names []string
	// Err is the underlying failure, if any.
	Err error
}

// IsError reports whether the result describes a failure.
func (r Result) IsError() bool { return r.Outcome != OutcomeOK }

// Dispatcher runs the list and fetch operations against a catalog and loader.
// It is stateless and safe for concurrent use when its dependencies are.
type Dispatcher struct {
	catalog Catalog
	loader  Loader
}

// New returns a Dispatcher. A [*prompt.Library] satisfies both interfaces.
func New(catalog Catalog, loader Loader) *Dispatcher {
	return &Dispatcher{catalog: catalog, loader: loader}
}

// Call resolves tool and runs the selected operation with args.
// Panics are recovered and reported as [OutcomeUnexpected].
func (d *Dispatcher) Call(ctx context.Context, tool string, args map[string]any) (res Result) {
	decision := Resolve(tool)
	defer func() {
		if r := recover(); r != nil {
			res = unexpected(fmt.Errorf("%v", r))
			record(decision.Op, res)
		}
	}()

	if err := ctx.Err(); err != nil {
		res = unexpected(err)
		record(decision.Op, res)
		return res
	}

	switch decision.Op {
	case OpList:
		return d.ListAvailable()
	case OpFetchByName:
		name, _ := args[TaskNameArg].(string)
		return d.FetchByName(name)
	case OpFetchSynthesized:
		res = d.fetch(decision.Name)
	default:
		res = Result{
			Outcome: OutcomeUnknownOperation,
			Text:    fmt.Sprintf("Error: Unknown tool '%s'", tool),
		}
	}
	record(decision.Op, res)
	return res
}

// Names returns the current catalog without recording an operation.
func (d *Dispatcher) Names() []string { return d.catalog.List() }

// ListAvailable returns the catalog as a bullet list. It never fails.
func (d *Dispatcher) ListAvailable() Result {
	names := d.catalog.List()

	var b strings.Builder
	b.WriteString("Available prompts:\n")
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(name)
	}
	b.WriteString("\n\nUse '" + FetchToolName + "' with the " + TaskNameArg +
		" parameter, or use the specific '" + ToolPrefix + "[name]' tools to fetch individual prompts.")

	res := Result{Outcome: OutcomeOK, Text: b.String(), Names: names}
	record(OpList, res)
	return res
}

// FetchByName loads the prompt called name. An empty name is a missing parameter.
func (d *Dispatcher) FetchByName(name string) Result {
	var res Result
	if name == "" {
		res = Result{
			Outcome: OutcomeMissingParameter,
			Text:    "Error: " + TaskNameArg + " parameter is required",
		}
	} else {
		res = d.fetch(name)
	}
	record(OpFetchByName, res)
	return res
}

// fetch runs the loader path shared by both fetch operations.
func (d *Dispatcher) fetch(name string) Result {
	content, err := d.loader.Load(name)
	if err == nil {
		return Result{
			Outcome: OutcomeOK,
			Text:    fmt.Sprintf("Prompt for '%s':\n\n%s", name, content),
			Content: content,
		}
	}

	var outcome Outcome
	switch prompt.KindOf(err) {
	case prompt.KindInvalidName:
		outcome = OutcomeInvalidIdentifier
	case prompt.KindNotFound:
		outcome = OutcomeNotFound
	case prompt.KindIO:
		outcome = OutcomeIOError
	default:
		return unexpected(err)
	}
	return Result{Outcome: outcome, Text: "Error: " + err.Error(), Err: err}
}

func unexpected(err error) Result {
	return Result{
		Outcome: OutcomeUnexpected,
		Text:    "Unexpected error: " + err.Error(),
		Err:     err,
	}
}

func record(op Op, res Result) {
	metrics.PromptRequestsTotal.WithLabelValues(op.String(), string(res.Outcome)).Inc()
}
