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
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/template"

	httpserver "github.com/H0llyW00dzZ/mcp-prompt-server/src/http-server"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/mcp-server/templates"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// Flag names shared by the root command and its subcommands.
const (
	flagConfig       = "config"
	flagPromptsDir   = "prompts-dir"
	flagEnvFile      = "env-file"
	flagInstructions = "instructions"
	flagAddr         = "addr"

	defaultEnvFile = ".env"
)

// cliHelpData holds the data used to populate the CLI help template.
//
// Fields:
//   - ExeName: The name of the executable binary for command examples
//   - PromptsDirFlagName: The formatted prompts directory flag name (e.g., "--prompts-dir")
//   - ConfigFlagName: The formatted config flag name (e.g., "--config")
//   - InstructionsFlagName: The formatted instructions flag name (e.g., "--instructions")
//   - HelpFlagName: The formatted help flag name (e.g., "--help")
type cliHelpData struct {
	ExeName              string
	PromptsDirFlagName   string
	ConfigFlagName       string
	InstructionsFlagName string
	HelpFlagName         string
}

// CLIFramework integrates Cobra CLI with the prompt server transports.
//
// Key features:
//   - Dynamic executable naming based on actual binary path (not hardcoded)
//   - [Gopls-style] --instructions flag printing the instructions sent to MCP clients
//   - Configuration file support via --config flag or MCP_PROMPTS_CONFIG_FILE environment variable
//   - .env loading via --env-file before configuration is resolved
//   - Default stdio MCP server startup when no arguments are provided
//   - "http", "list" and "generate-config" subcommands
//   - Graceful shutdown handling with signal interception
//
// Fields:
//   - configFile: Path to the configuration file, empty for environment variable fallback
//   - promptsDir: Prompts directory from --prompts-dir; overrides every other source
//   - envFile: Path of the .env file loaded before configuration
//   - showInstructions: Set by --instructions
//   - addr: Listen address from the http subcommand's --addr flag
//   - embed: Embedded filesystem holding the CLI help template
//   - version: Server version string
//
// [Gopls-style]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile       string
	promptsDir       string
	envFile          string
	showInstructions bool
	addr             string
	embed            templates.EmbedFS
	version          string
}

// runtimeState is everything a command needs once flags, .env and configuration are resolved.
type runtimeState struct {
	config     *Config
	log        logger.Logger
	library    *prompt.Library
	dispatcher *dispatch.Dispatcher
}

// NewCLIFramework creates a new CLI framework instance.
//
// Parameters:
//   - configFile: Default configuration file path; can be overridden via --config.
//     Pass empty string to use the environment variable or defaults.
//   - version: Server version string shown by --version and reported to clients
//
// Returns:
//   - *CLIFramework: Initialized CLI framework ready for building commands.
//
// Configuration loading is deferred until a command runs so flags and the
// .env file are applied first.
func NewCLIFramework(configFile, version string) *CLIFramework {
	return &CLIFramework{
		configFile: configFile,
		envFile:    defaultEnvFile,
		embed:      templates.MagicEmbed,
		version:    version,
	}
}

// BuildRootCommand creates the root Cobra command with its subcommands.
//
// Command behavior:
//   - With --instructions: Prints the server instructions and exits
//   - Without arguments: Starts the stdio MCP server (default behavior)
//   - http: Serves the JSON API
//   - list: Prints the available prompts as a markdown table
//   - generate-config: Prints the MCP client configuration document
//
// Returns:
//   - *cobra.Command: Root command ready for Execute.
//
// It panics if the embedded CLI help template cannot be processed.
func (cf *CLIFramework) BuildRootCommand() *cobra.Command {
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "Prompt template library served over MCP stdio and HTTP",
		Version:       cf.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Ensure help flag is available for flag name lookup during command building
	rootCmd.Flags().BoolP("help", "h", false, "help for "+exeName)

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&cf.showInstructions, flagInstructions, false, "print the instructions sent to MCP clients")
	pf.StringVar(&cf.configFile, flagConfig, cf.configFile, "path to configuration file (JSON or YAML)")
	pf.StringVar(&cf.promptsDir, flagPromptsDir, "", "directory holding <name>.txt prompt files")
	pf.StringVar(&cf.envFile, flagEnvFile, cf.envFile, "path to a .env file loaded before configuration")

	if cf.embed == nil {
		panic("CLIFramework embed filesystem not initialized")
	}

	longDesc, examples, err := cf.loadAndExecuteCLIHelpTemplate(extractFlagNames(rootCmd, exeName))
	if err != nil {
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = cf.runRoot
	rootCmd.AddCommand(
		cf.newHTTPCommand(),
		cf.newListCommand(),
		cf.newGenerateConfigCommand(),
	)

	return rootCmd
}

// loadAndExecuteCLIHelpTemplate loads the CLI help template from the embedded filesystem,
// executes it with data, and splits the result into Long description and Examples.
//
// Returns:
//   - longDesc: The processed Long description text for the CLI command
//   - examples: The processed Examples section text for the CLI command
//   - err: Template loading, parsing, execution, or result parsing errors
func (cf *CLIFramework) loadAndExecuteCLIHelpTemplate(data cliHelpData) (longDesc, examples string, err error) {
	templateBytes, err := cf.embed.ReadFile(templates.CLIHelpFile)
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}

	return parseTemplateResult(result.String())
}

// parseTemplateResult splits rendered help text at the "## Examples" line.
//
// Parameters:
//   - templateResult: The rendered template output as a string
//
// Returns:
//   - longDesc: Everything before the "## Examples" line, trimmed
//   - examples: Everything after the "## Examples" line, trimmed
//   - err: An error if the marker is missing
//
// Both \n and \r\n line endings are handled.
func parseTemplateResult(templateResult string) (longDesc, examples string, err error) {
	const examplesMarker = "## Examples"
	markerIndex := strings.Index(templateResult, examplesMarker)
	if markerIndex == -1 {
		return "", "", errors.New("CLI help template has invalid format - missing '## Examples' section")
	}

	lineStart := strings.LastIndex(templateResult[:markerIndex], "\n") + 1

	lineEnd := strings.Index(templateResult[markerIndex:], "\n")
	if lineEnd == -1 {
		lineEnd = len(templateResult)
	} else {
		lineEnd += markerIndex
	}

	longDesc = strings.TrimSpace(templateResult[:lineStart])
	examples = strings.TrimSpace(templateResult[lineEnd:])
	return longDesc, examples, nil
}

// extractFlagNames looks up the root command's flags and formats their names
// with the "--" prefix for the help template. Missing flags fall back to
// their default names.
func extractFlagNames(rootCmd *cobra.Command, exeName string) cliHelpData {
	data := cliHelpData{
		ExeName:              exeName,
		PromptsDirFlagName:   "--" + flagPromptsDir,
		ConfigFlagName:       "--" + flagConfig,
		InstructionsFlagName: "--" + flagInstructions,
		HelpFlagName:         "--help",
	}

	if f := rootCmd.PersistentFlags().Lookup(flagPromptsDir); f != nil {
		data.PromptsDirFlagName = "--" + f.Name
	}
	if f := rootCmd.PersistentFlags().Lookup(flagConfig); f != nil {
		data.ConfigFlagName = "--" + f.Name
	}
	if f := rootCmd.PersistentFlags().Lookup(flagInstructions); f != nil {
		data.InstructionsFlagName = "--" + f.Name
	}
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		data.HelpFlagName = "--" + f.Name
	}

	return data
}

// prepare resolves the .env file, configuration and flags into a runtimeState.
//
// Precedence for the prompts directory is --prompts-dir, MCP_PROMPTS_DIR,
// the configuration file, then the default next to the executable.
// A missing .env file is skipped unless --env-file was given explicitly.
func (cf *CLIFramework) prepare(cmd *cobra.Command) (*runtimeState, error) {
	if cf.envFile != "" {
		if err := godotenv.Load(cf.envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed(flagEnvFile) {
				return nil, fmt.Errorf("failed to load env file: %w", err)
			}
		}
	}

	config, err := loadConfig(cf.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cf.promptsDir != "" {
		config.Prompts.Dir = cf.promptsDir
	}

	l := logger.New(config.Log.Format, "", config.Log.Silent)
	if !config.Log.Silent {
		l.SetOutput(cmd.ErrOrStderr())
	}

	lib := prompt.NewLibrary(config.Prompts.Dir)
	return &runtimeState{
		config:     config,
		log:        l,
		library:    lib,
		dispatcher: dispatch.New(lib, lib),
	}, nil
}

// checkPromptsDir verifies the prompts directory before a server starts and
// logs what was found.
//
// Returns:
//   - error: "prompts directory not found at <dir>" when it does not exist,
//     "<dir> is not a directory" when it is something else
func (rs *runtimeState) checkPromptsDir() error {
	dir := rs.library.Dir()
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("prompts directory not found at %s", dir)
	case err != nil:
		return fmt.Errorf("failed to access prompts directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	}

	names := rs.dispatcher.Names()
	rs.log.Printf("Using prompts directory: %s", dir)
	rs.log.Printf("Found %d prompts: %s", len(names), strings.Join(names, ", "))
	return nil
}

// runRoot prints the instructions when requested, otherwise starts the stdio server.
func (cf *CLIFramework) runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %s for %q", strings.Join(args, " "), cmd.Name())
	}

	rs, err := cf.prepare(cmd)
	if err != nil {
		return err
	}

	if cf.showInstructions {
		return cf.printInstructions(cmd, rs)
	}
	return cf.startMCPServer(cmd, rs)
}

// printInstructions writes the instructions MCP clients receive during initialization.
func (cf *CLIFramework) printInstructions(cmd *cobra.Command, rs *runtimeState) error {
	instructions, err := loadInstructions(rs.dispatcher)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
	return err
}

// buildMCPServer assembles the MCP server for rs with the ServerBuilder.
func (cf *CLIFramework) buildMCPServer(rs *runtimeState) (*server.MCPServer, error) {
	instructions, err := loadInstructions(rs.dispatcher)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructions: %w", err)
	}

	return NewServerBuilder().
		WithConfig(rs.config).
		WithVersion(cf.version).
		WithDispatcher(rs.dispatcher).
		WithResources(createResources(rs.dispatcher, rs.library.Dir(), cf.version)...).
		WithResourceTemplates(createResourceTemplates(rs.dispatcher)...).
		WithInstructions(instructions).
		WithLogger(rs.log).
		Build()
}

// startMCPServer serves MCP over the command's stdin and stdout until the
// input ends or a signal arrives.
//
// Returns:
//   - nil: When the input ends or the server shuts down due to a signal
//   - error: Startup check, server building, or transport errors
func (cf *CLIFramework) startMCPServer(cmd *cobra.Command, rs *runtimeState) error {
	if err := rs.checkPromptsDir(); err != nil {
		return err
	}

	mcpServer, err := cf.buildMCPServer(rs)
	if err != nil {
		return fmt.Errorf("failed to build MCP server: %w", err)
	}

	ctx, cancel := signalContext(cmd.Context(), rs.log)
	defer cancel()

	rs.log.Printf("%s MCP server started.", ServerName)

	stdioServer := server.NewStdioServer(mcpServer)
	if err := stdioServer.Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newHTTPCommand creates the "http" subcommand serving the JSON API.
func (cf *CLIFramework) newHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve prompts over the HTTP JSON API",
		Long: "Serve GET " + httpserver.PromptsPath + "/{task_name}, GET " + httpserver.PromptsPath +
			", " + httpserver.HealthPath + " and " + httpserver.MetricsPath + " until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cf.prepare(cmd)
			if err != nil {
				return err
			}
			if err := rs.checkPromptsDir(); err != nil {
				return err
			}

			addr := rs.config.HTTP.Addr
			if cf.addr != "" {
				addr = cf.addr
			}

			ctx, cancel := signalContext(cmd.Context(), rs.log)
			defer cancel()

			handler := httpserver.New(rs.dispatcher, rs.log).Handler()
			srv := httpserver.NewHTTPServer(addr, handler, rs.config.ReadHeaderTimeout())
			rs.log.Printf("HTTP server listening on %s", addr)
			return httpserver.Serve(ctx, srv, rs.config.ShutdownTimeout())
		},
	}
	cmd.Flags().StringVar(&cf.addr, flagAddr, "", "listen address (default from config or "+DefaultHTTPAddr+")")
	return cmd
}

// newListCommand creates the "list" subcommand printing the catalog as a markdown table.
func (cf *CLIFramework) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the available prompts as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cf.prepare(cmd)
			if err != nil {
				return err
			}
			if err := rs.checkPromptsDir(); err != nil {
				return err
			}
			return renderPromptTable(cmd, rs.library)
		},
	}
}

// renderPromptTable writes one row per prompt: name, tool name and size in bytes.
func renderPromptTable(cmd *cobra.Command, lib *prompt.Library) error {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Name", "Tool", "Size"})

	var rows [][]string
	for _, name := range lib.List() {
		size := "-"
		if info, err := os.Stat(lib.Path(name)); err == nil {
			size = strconv.FormatInt(info.Size(), 10)
		}
		rows = append(rows, []string{name, dispatch.SynthesizeToolName(name), size})
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build prompt table: %w", err)
	}
	return table.Render()
}

// mcpClientConfig is the document MCP clients such as Cursor read from their mcp.json.
type mcpClientConfig struct {
	MCPServers map[string]mcpClientServer `json:"mcpServers"`
}

type mcpClientServer struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// newGenerateConfigCommand creates the "generate-config" subcommand.
//
// The document names this executable by absolute path and pins the resolved
// prompts directory, plus the configuration file when one was given. It is
// written alone to stdout; the prompt summary goes to the log.
func (cf *CLIFramework) newGenerateConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config",
		Short: "Print the MCP client configuration for this server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cf.prepare(cmd)
			if err != nil {
				return err
			}

			doc, err := cf.clientConfig(rs)
			if err != nil {
				return err
			}

			names := rs.dispatcher.Names()
			rs.log.Printf("Available prompts: %d", len(names))
			for _, name := range names {
				rs.log.Printf("  - %s", name)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

// clientConfig builds the MCP client configuration document for rs.
func (cf *CLIFramework) clientConfig(rs *runtimeState) (*mcpClientConfig, error) {
	exe, err := posix.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	dir, err := filepath.Abs(rs.library.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prompts directory: %w", err)
	}

	args := []string{"--" + flagPromptsDir, dir}
	if cf.configFile != "" {
		configPath, err := filepath.Abs(cf.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config file: %w", err)
		}
		args = append(args, "--"+flagConfig, configPath)
	}

	return &mcpClientConfig{
		MCPServers: map[string]mcpClientServer{
			ServerName: {Command: exe, Args: args},
		},
	}, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// The returned cancel function also stops signal delivery.
func signalContext(parent context.Context, l logger.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			l.Printf("Received signal %s, initiating graceful shutdown...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
