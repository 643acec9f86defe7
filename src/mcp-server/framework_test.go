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
	"os"
	"path/filepath"
	"testing"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVersion = "1.2.3"

func writePrompts(t *testing.T, dir string, prompts map[string]string) {
	t.Helper()
	for name, content := range prompts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+prompt.Extension), []byte(content), 0o644))
	}
}

// newTestServer builds the full server over dir.
func newTestServer(t *testing.T, dir string) *server.MCPServer {
	t.Helper()

	lib := prompt.NewLibrary(dir)
	d := dispatch.New(lib, lib)

	instructions, err := loadInstructions(d)
	require.NoError(t, err)

	s, err := NewServerBuilder().
		WithVersion(testVersion).
		WithDispatcher(d).
		WithResources(createResources(d, dir, testVersion)...).
		WithResourceTemplates(createResourceTemplates(d)...).
		WithInstructions(instructions).
		Build()
	require.NoError(t, err)
	return s
}

// connectTestClient returns an initialized in-process client for s.
func connectTestClient(t *testing.T, s *server.MCPServer) (*client.Client, *mcp.InitializeResult) {
	t.Helper()

	c, err := client.NewInProcessClient(s)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	res, err := c.Initialize(ctx, req)
	require.NoError(t, err)

	return c, res
}

// newTestClient builds the full server over dir and returns an initialized in-process client.
func newTestClient(t *testing.T, dir string) (*client.Client, *mcp.InitializeResult) {
	t.Helper()
	return connectTestClient(t, newTestServer(t, dir))
}

func listToolNames(t *testing.T, c *client.Client) []string {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func resourceText(t *testing.T, contents []mcp.ResourceContents) (string, string) {
	t.Helper()
	require.Len(t, contents, 1)

	switch c := contents[0].(type) {
	case mcp.TextResourceContents:
		return c.Text, c.MIMEType
	case *mcp.TextResourceContents:
		return c.Text, c.MIMEType
	default:
		t.Fatalf("expected text resource contents, got %T", contents[0])
		return "", ""
	}
}

func TestServerBuilder_RequiresDispatcher(t *testing.T) {
	s, err := NewServerBuilder().WithVersion(testVersion).Build()
	assert.ErrorIs(t, err, errNoDispatcher)
	assert.Nil(t, s)
}

func TestServer_Initialize(t *testing.T) {
	_, res := newTestClient(t, t.TempDir())

	assert.Equal(t, ServerName, res.ServerInfo.Name)
	assert.Equal(t, testVersion, res.ServerInfo.Version)
	assert.Contains(t, res.Instructions, dispatch.ListToolName)
	assert.Contains(t, res.Instructions, dispatch.FetchToolName)
	assert.Contains(t, res.Instructions, dispatch.ToolPrefix+"<task_name>")
	require.NotNil(t, res.Capabilities.Tools)
	assert.False(t, res.Capabilities.Tools.ListChanged)
}

func TestServer_ListTools(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"review_tasks": "r", "create_prd": "c"})
	c, _ := newTestClient(t, dir)

	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)

		require.NotNil(t, tool.Annotations.ReadOnlyHint, tool.Name)
		assert.True(t, *tool.Annotations.ReadOnlyHint, tool.Name)
		require.NotNil(t, tool.Annotations.DestructiveHint, tool.Name)
		assert.False(t, *tool.Annotations.DestructiveHint, tool.Name)

		switch tool.Name {
		case dispatch.FetchToolName:
			assert.Equal(t, []string{dispatch.TaskNameArg}, tool.InputSchema.Required)
			assert.Contains(t, tool.InputSchema.Properties, dispatch.TaskNameArg)
		case "get_prompt_create_prd":
			assert.Equal(t, "Get Create Prd Prompt", tool.Annotations.Title)
			assert.Empty(t, tool.InputSchema.Required)
		}
	}

	want := []string{
		dispatch.ListToolName,
		"get_prompt_create_prd",
		"get_prompt_review_tasks",
		dispatch.FetchToolName,
	}
	// mcp-go orders the wire listing by name.
	assert.ElementsMatch(t, want, names)
}

func TestServer_ListToolsReflectsDirectory(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"alpha": "a"})
	c, _ := newTestClient(t, dir)

	assert.ElementsMatch(t, []string{dispatch.ListToolName, "get_prompt_alpha", dispatch.FetchToolName}, listToolNames(t, c))

	writePrompts(t, dir, map[string]string{"beta": "b"})
	require.NoError(t, os.Remove(filepath.Join(dir, "alpha"+prompt.Extension)))

	assert.ElementsMatch(t, []string{dispatch.ListToolName, "get_prompt_beta", dispatch.FetchToolName}, listToolNames(t, c))

	text, isError := callTool(t, c, "get_prompt_beta", nil)
	assert.False(t, isError)
	assert.Equal(t, "Prompt for 'beta':\n\nb", text)
}

func TestServer_CallTool(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{
		"create_prd":   "Write a PRD.\r\nKeep it short.",
		"review_tasks": "",
	})
	c, _ := newTestClient(t, dir)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		want    string
		isError bool
	}{
		{
			name: "List",
			tool: dispatch.ListToolName,
			want: "Available prompts:\n- create_prd\n- review_tasks\n\n" +
				"Use 'get_prompt_by_name' with the task_name parameter, or use the specific 'get_prompt_[name]' tools to fetch individual prompts.",
		},
		{
			name: "Synthesized",
			tool: "get_prompt_create_prd",
			want: "Prompt for 'create_prd':\n\nWrite a PRD.\r\nKeep it short.",
		},
		{
			name: "SynthesizedEmptyFile",
			tool: "get_prompt_review_tasks",
			want: "Prompt for 'review_tasks':\n\n",
		},
		{
			name: "ByName",
			tool: dispatch.FetchToolName,
			args: map[string]any{dispatch.TaskNameArg: "create_prd"},
			want: "Prompt for 'create_prd':\n\nWrite a PRD.\r\nKeep it short.",
		},
		{
			name:    "ByNameMissingArgument",
			tool:    dispatch.FetchToolName,
			args:    map[string]any{},
			want:    "Error: task_name parameter is required",
			isError: true,
		},
		{
			name:    "ByNameNonString",
			tool:    dispatch.FetchToolName,
			args:    map[string]any{dispatch.TaskNameArg: 42},
			want:    "Error: task_name parameter is required",
			isError: true,
		},
		{
			name:    "ByNameNotFound",
			tool:    dispatch.FetchToolName,
			args:    map[string]any{dispatch.TaskNameArg: "missing"},
			want:    "Error: Prompt not found for task: missing",
			isError: true,
		},
		{
			name:    "ByNameTraversal",
			tool:    dispatch.FetchToolName,
			args:    map[string]any{dispatch.TaskNameArg: "../secret"},
			want:    "Error: Invalid task name: ../secret",
			isError: true,
		},
		{
			name:    "SynthesizedNotFound",
			tool:    "get_prompt_missing",
			want:    "Error: Prompt not found for task: missing",
			isError: true,
		},
		{
			name:    "SynthesizedEmptyName",
			tool:    dispatch.ToolPrefix,
			want:    "Error: Invalid task name: ",
			isError: true,
		},
		{
			name:    "Unknown",
			tool:    "frobnicate",
			want:    "Error: Unknown tool 'frobnicate'",
			isError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := callTool(t, c, tt.tool, tt.args)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, tt.isError, isError)
		})
	}
}

func TestServer_UnknownToolNotListed(t *testing.T) {
	c, _ := newTestClient(t, t.TempDir())

	text, isError := callTool(t, c, "frobnicate", nil)
	assert.True(t, isError)
	assert.Equal(t, "Error: Unknown tool 'frobnicate'", text)

	assert.NotContains(t, listToolNames(t, c), "frobnicate")

	// A second call after the listing dropped it is answered the same way.
	text, isError = callTool(t, c, "frobnicate", nil)
	assert.True(t, isError)
	assert.Equal(t, "Error: Unknown tool 'frobnicate'", text)
}

func TestServer_UnknownToolsDoNotAccumulate(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"alpha": "a"})
	s := newTestServer(t, dir)
	c, _ := connectTestClient(t, s)

	before := len(s.ListTools())
	require.Equal(t, 3, before)

	for i := range 200 {
		name := fmt.Sprintf("junk_%d", i)
		text, isError := callTool(t, c, name, nil)
		assert.True(t, isError)
		assert.Equal(t, "Error: Unknown tool '"+name+"'", text)
	}
	assert.Len(t, s.ListTools(), before)

	text, isError := callTool(t, c, "get_prompt_beta", nil)
	assert.True(t, isError)
	assert.Equal(t, "Error: Prompt not found for task: beta", text)
	assert.Nil(t, s.GetTool("get_prompt_beta"))

	// Listed tools survive their own calls.
	text, isError = callTool(t, c, "get_prompt_alpha", nil)
	assert.False(t, isError)
	assert.Contains(t, text, "a")
	assert.NotNil(t, s.GetTool("get_prompt_alpha"))
	assert.Len(t, s.ListTools(), before)
}

func TestToolTable_ReleaseCountsCalls(t *testing.T) {
	s := server.NewMCPServer(ServerName, testVersion, server.WithToolCapabilities(false))
	lib := prompt.NewLibrary(t.TempDir())
	tools := newToolTable(s, dispatch.New(lib, lib), logger.NewStructuredLogger(nil, "", true))
	tools.refresh()

	req := &mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "pending"}}
	tools.beforeCall(context.Background(), 1, req)
	tools.beforeCall(context.Background(), 2, req)
	require.NotNil(t, s.GetTool("pending"))

	tools.afterCall(context.Background(), 1, req, nil)
	assert.NotNil(t, s.GetTool("pending"), "second call still in flight")

	tools.onError(context.Background(), 2, mcp.MethodToolsCall, req, errors.New("boom"))
	assert.Nil(t, s.GetTool("pending"))
	assert.Empty(t, tools.inFlight)

	// Errors from other methods and unknown releases are ignored.
	tools.onError(context.Background(), 3, mcp.MethodToolsList, req, errors.New("boom"))
	tools.afterCall(context.Background(), 4, req, nil)
	assert.Empty(t, tools.inFlight)
}

func TestServer_StaleSynthesizedTool(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"alpha": "a"})
	c, _ := newTestClient(t, dir)

	require.Contains(t, listToolNames(t, c), "get_prompt_alpha")
	require.NoError(t, os.Remove(filepath.Join(dir, "alpha"+prompt.Extension)))

	text, isError := callTool(t, c, "get_prompt_alpha", nil)
	assert.True(t, isError)
	assert.Equal(t, "Error: Prompt not found for task: alpha", text)
}

func TestServer_Resources(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"beta": "B", "alpha": "A"})
	c, _ := newTestClient(t, dir)
	ctx := context.Background()

	read := func(uri string) (*mcp.ReadResourceResult, error) {
		req := mcp.ReadResourceRequest{}
		req.Params.URI = uri
		return c.ReadResource(ctx, req)
	}

	t.Run("List", func(t *testing.T) {
		res, err := c.ListResources(ctx, mcp.ListResourcesRequest{})
		require.NoError(t, err)

		var uris []string
		for _, r := range res.Resources {
			uris = append(uris, r.URI)
		}
		assert.ElementsMatch(t, []string{VersionResourceURI, StatusResourceURI}, uris)

		templates, err := c.ListResourceTemplates(ctx, mcp.ListResourceTemplatesRequest{})
		require.NoError(t, err)
		require.Len(t, templates.ResourceTemplates, 1)
		assert.Equal(t, "text/plain", templates.ResourceTemplates[0].MIMEType)
	})

	t.Run("Version", func(t *testing.T) {
		res, err := read(VersionResourceURI)
		require.NoError(t, err)

		text, mime := resourceText(t, res.Contents)
		assert.Equal(t, "application/json", mime)

		var info struct {
			Name       string   `json:"name"`
			Version    string   `json:"version"`
			Tools      []string `json:"tools"`
			ToolPrefix string   `json:"toolPrefix"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &info))
		assert.Equal(t, ServerName, info.Name)
		assert.Equal(t, testVersion, info.Version)
		assert.Equal(t, []string{dispatch.ListToolName, dispatch.FetchToolName}, info.Tools)
		assert.Equal(t, dispatch.ToolPrefix, info.ToolPrefix)
	})

	t.Run("Status", func(t *testing.T) {
		res, err := read(StatusResourceURI)
		require.NoError(t, err)

		text, _ := resourceText(t, res.Contents)

		var status struct {
			Status     string             `json:"status"`
			PromptsDir string             `json:"promptsDir"`
			Prompts    []string           `json:"prompts"`
			Runtime    *ResourceUsageData `json:"runtime"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, dir, status.PromptsDir)
		assert.Equal(t, []string{"alpha", "beta"}, status.Prompts)
		require.NotNil(t, status.Runtime)
		assert.Contains(t, status.Runtime.SystemInfo, "num_goroutine")
	})

	t.Run("Prompt", func(t *testing.T) {
		res, err := read("prompts://alpha")
		require.NoError(t, err)

		text, mime := resourceText(t, res.Contents)
		assert.Equal(t, "A", text)
		assert.Equal(t, "text/plain", mime)
	})

	t.Run("PromptNotFound", func(t *testing.T) {
		_, err := read("prompts://missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Prompt not found for task: missing")
	})

	t.Run("PromptEncodedName", func(t *testing.T) {
		_, err := read("prompts://%2E%2Esecret")
		require.Error(t, err)
	})
}

func TestNewToolResult(t *testing.T) {
	tests := []struct {
		name       string
		res        dispatch.Result
		isError    bool
		structured any
	}{
		{
			name:       "List",
			res:        dispatch.Result{Outcome: dispatch.OutcomeOK, Text: "Available prompts:\n- a", Names: []string{"a"}},
			structured: map[string]any{"prompts": []string{"a"}},
		},
		{
			name:       "EmptyList",
			res:        dispatch.Result{Outcome: dispatch.OutcomeOK, Text: "Available prompts:\n", Names: []string{}},
			structured: map[string]any{"prompts": []string{}},
		},
		{
			name: "Fetch",
			res:  dispatch.Result{Outcome: dispatch.OutcomeOK, Text: "Prompt for 'a':\n\nx", Content: "x"},
		},
		{
			name:    "Error",
			res:     dispatch.Result{Outcome: dispatch.OutcomeNotFound, Text: "Error: Prompt not found for task: a"},
			isError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newToolResult(tt.res)
			assert.Equal(t, tt.isError, result.IsError)
			assert.Equal(t, tt.structured, result.StructuredContent)

			require.Len(t, result.Content, 1)
			text, ok := mcp.AsTextContent(result.Content[0])
			require.True(t, ok)
			assert.Equal(t, tt.res.Text, text.Text)
		})
	}
}

func TestGenericTools(t *testing.T) {
	dir := t.TempDir()
	writePrompts(t, dir, map[string]string{"alpha": "a"})
	lib := prompt.NewLibrary(dir)

	var names []string
	for _, tool := range genericTools(dispatch.New(lib, lib)) {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{dispatch.ListToolName, dispatch.FetchToolName}, names)
}

func TestCollectResourceUsage(t *testing.T) {
	usage := CollectResourceUsage()

	assert.Contains(t, usage.MemoryUsage, "heap_alloc_mb")
	assert.Contains(t, usage.GCStats, "num_gc")
	assert.Contains(t, usage.SystemInfo, "go_version")
	assert.Positive(t, usage.SystemInfo["num_goroutine"])
}
