// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"errors"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the name the server reports during the [MCP] handshake and
// the key used in generated client configuration.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
const ServerName = "mcp-product-documentation"

// errNoDispatcher is returned by Build when no dispatcher was configured.
var errNoDispatcher = errors.New("mcpserver: dispatcher is required")

// ServerDependencies holds all dependencies needed to create the MCP server.
// It consolidates all required components for server initialization using the builder pattern.
//
// Fields:
//   - Config: Server configuration (prompts directory, HTTP and log settings)
//   - Version: Server version string reported to clients
//   - Dispatcher: Maps tool invocations onto the prompt library
//   - Resources: Static resources such as version and status information
//   - ResourceTemplates: Parameterised resources such as prompts://{task_name}
//   - Instructions: Text sent to clients during initialization
//   - Logger: Destination for diagnostic messages (never stdout)
//
// This struct is used internally by ServerBuilder and by CLIFramework.
type ServerDependencies struct {
	Config            *Config
	Version           string
	Dispatcher        *dispatch.Dispatcher
	Resources         []server.ServerResource
	ResourceTemplates []server.ServerResourceTemplate
	Instructions      string
	Logger            logger.Logger
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	lib := prompt.NewLibrary(dir)
//	d := dispatch.New(lib, lib)
//	s, err := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("1.0.0").
//	    WithDispatcher(d).
//	    WithResources(createResources(d, dir, version)...).
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithVersion sets the server version string reported during initialization.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithDispatcher sets the dispatcher that answers every tool call.
//
// Parameters:
//   - d: Dispatcher built over the prompt library (required)
//
// Returns:
//   - The ServerBuilder instance for method chaining
func (b *ServerBuilder) WithDispatcher(d *dispatch.Dispatcher) *ServerBuilder {
	b.deps.Dispatcher = d
	return b
}

// WithResources adds static resources to the server.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithResourceTemplates adds resource templates to the server.
func (b *ServerBuilder) WithResourceTemplates(templates ...server.ServerResourceTemplate) *ServerBuilder {
	b.deps.ResourceTemplates = append(b.deps.ResourceTemplates, templates...)
	return b
}

// WithInstructions sets the instructions sent to clients during initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithLogger sets the logger used for diagnostics. Output must not go to stdout
// when serving over stdio.
func (b *ServerBuilder) WithLogger(l logger.Logger) *ServerBuilder {
	b.deps.Logger = l
	return b
}

// Build creates the [MCP] server with all configured dependencies.
//
// Returns:
//   - The configured MCP server
//   - An error if no dispatcher was configured
//
// The tool table is owned by two hooks rather than registered once: every
// tools/list replaces it with the dispatcher's current descriptors, and every
// tools/call for a name the table does not hold registers that name first so
// the dispatcher, not the protocol layer, produces the answer. Such names are
// unregistered again once the call is answered or fails. List-changed
// notifications are not advertised.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Dispatcher == nil {
		return nil, errNoDispatcher
	}

	log := b.deps.Logger
	if log == nil {
		log = logger.NewStructuredLogger(nil, "", true)
	}

	hooks := &server.Hooks{}
	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithHooks(hooks),
		server.WithRecovery(),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}

	s := server.NewMCPServer(ServerName, b.deps.Version, opts...)

	tools := newToolTable(s, b.deps.Dispatcher, log)
	hooks.AddBeforeListTools(tools.beforeList)
	hooks.AddBeforeCallTool(tools.beforeCall)
	hooks.AddAfterCallTool(tools.afterCall)
	hooks.AddOnError(tools.onError)
	tools.refresh()

	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}
	for _, tmpl := range b.deps.ResourceTemplates {
		s.AddResourceTemplate(tmpl.Template, tmpl.Handler)
	}

	return s, nil
}
