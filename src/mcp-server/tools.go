// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"sync"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// unlistedToolDescription is attached to names registered on demand by beforeCall.
const unlistedToolDescription = "Tool name not present in the current listing; answered by the prompt dispatcher."

// toolTable keeps the server's registered tools in step with the prompt catalog.
//
// Names outside the current listing are registered only for the lifetime of
// the calls that use them, so the table never holds more than the listing plus
// the unlisted names with a call in flight.
type toolTable struct {
	server     *server.MCPServer
	dispatcher *dispatch.Dispatcher
	log        logger.Logger

	mu       sync.Mutex
	listed   map[string]struct{}
	inFlight map[string]int // unlisted name -> calls not yet answered
}

func newToolTable(s *server.MCPServer, d *dispatch.Dispatcher, log logger.Logger) *toolTable {
	return &toolTable{
		server:     s,
		dispatcher: d,
		log:        log,
		listed:     make(map[string]struct{}),
		inFlight:   make(map[string]int),
	}
}

// beforeList rebuilds the tool table from the catalog before tools/list is answered.
func (t *toolTable) beforeList(ctx context.Context, id any, request *mcp.ListToolsRequest) {
	t.refresh()
}

// beforeCall registers an unlisted tool name so the call reaches handle.
func (t *toolTable) beforeCall(ctx context.Context, id any, request *mcp.CallToolRequest) {
	if request == nil {
		return
	}
	name := request.Params.Name

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listed[name]; ok {
		return
	}
	if t.server.GetTool(name) == nil {
		t.server.AddTool(mcp.NewTool(name, mcp.WithDescription(unlistedToolDescription)), t.handle)
	}
	t.inFlight[name]++
}

// afterCall releases the name once its call has been answered.
func (t *toolTable) afterCall(ctx context.Context, id any, request *mcp.CallToolRequest, result *mcp.CallToolResult) {
	if request != nil {
		t.release(request.Params.Name)
	}
}

// onError releases the name of a tool call that failed before producing a result.
func (t *toolTable) onError(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
	if method != mcp.MethodToolsCall {
		return
	}
	if request, ok := message.(*mcp.CallToolRequest); ok && request != nil {
		t.release(request.Params.Name)
	}
}

// release drops one in-flight call for name and unregisters the name when it
// was the last one and the listing does not hold it.
func (t *toolTable) release(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.inFlight[name]
	if !ok {
		return
	}
	if n > 1 {
		t.inFlight[name] = n - 1
		return
	}
	delete(t.inFlight, name)
	if _, listed := t.listed[name]; !listed {
		t.server.DeleteTools(name)
	}
}

// refresh replaces every registered tool with the dispatcher's current descriptors.
// An unlisted name dropped here while its call is in flight is still released
// by that call; its lookup may already have failed.
func (t *toolTable) refresh() {
	descriptors := t.dispatcher.Tools()

	tools := make([]server.ServerTool, 0, len(descriptors))
	listed := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, server.ServerTool{Tool: newTool(d), Handler: t.handle})
		listed[d.Name] = struct{}{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.server.SetTools(tools...)
	t.listed = listed
}

// handle answers every tool call through the dispatcher.
//
// Parameters:
//   - ctx: Context for cancellation
//   - request: The MCP tool call request; its name selects the operation
//
// Returns:
//   - A text result, flagged as an error for every non-ok outcome
//   - Always a nil error: failures are reported to the client as tool results
func (t *toolTable) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := t.dispatcher.Call(ctx, request.Params.Name, request.GetArguments())
	if res.Outcome == dispatch.OutcomeUnexpected {
		t.log.Errorf("tool %s: %s", request.Params.Name, res.Text)
	}
	return newToolResult(res), nil
}

// newTool converts a dispatcher descriptor into an MCP tool definition.
// Every tool is read-only, idempotent and closed-world.
func newTool(d dispatch.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(d.Description),
		mcp.WithTitleAnnotation(d.Title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}
	if d.TaskName {
		opts = append(opts, mcp.WithString(dispatch.TaskNameArg,
			mcp.Required(),
			mcp.Description(dispatch.TaskNameDescription),
		))
	}
	return mcp.NewTool(d.Name, opts...)
}

// newToolResult converts a dispatcher result into an MCP tool result.
// Successful listings also carry the names as structured content.
func newToolResult(res dispatch.Result) *mcp.CallToolResult {
	if res.IsError() {
		return mcp.NewToolResultError(res.Text)
	}
	result := mcp.NewToolResultText(res.Text)
	if res.Names != nil {
		result.StructuredContent = map[string]any{"prompts": res.Names}
	}
	return result
}
