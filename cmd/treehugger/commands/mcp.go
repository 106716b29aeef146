package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/internal/mcp"
	"github.com/qckfx/tree-hugger-js/internal/observability"
	"github.com/qckfx/tree-hugger-js/pkg/config"
	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var debug bool

	var diagnosticsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes treehugger capabilities as tools that AI agents
can discover and invoke:
  - parse_file: Parse source into a syntax tree
  - find_nodes: Find nodes matching a CSS-like pattern
  - transform_source: Apply rename, replace, remove, import-pruning, and insert operations

With --diagnostics-addr, an HTTP server exposes /healthz, /readyz, and
Prometheus /metrics for the tool-call RED metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPathFrom(cobraCmd))
			if err != nil {
				return err
			}

			providers, err := observability.Init(mcpObservabilityConfig(cfg, debug))
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			meter := providers.Meter

			addr := diagnosticsAddr
			if addr == "" {
				addr = cfg.Diagnostics.Addr
			}

			if addr != "" {
				diag, diagErr := observability.NewDiagnosticsServer(addr, grammarReadyCheck)
				if diagErr != nil {
					return diagErr
				}

				defer func() {
					closeErr := diag.Close()
					if closeErr != nil {
						providers.Logger.Warn("diagnostics server close failed", "error", closeErr)
					}
				}()

				providers.Logger.Info("diagnostics server listening", "addr", diag.Addr())

				// Record tool metrics on the Prometheus bridge so they
				// show up on /metrics.
				meter = diag.Meter()
			}

			red, redErr := observability.NewREDMetrics(meter)
			if redErr != nil {
				return redErr
			}

			deps := mcp.ServerDeps{Logger: providers.Logger, Metrics: red, Tracer: providers.Tracer}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&diagnosticsAddr, "diagnostics-addr", "", "Serve /healthz, /readyz, and /metrics on this address")

	return cmd
}

// mcpObservabilityConfig maps the treehugger config onto the
// observability setup for serve mode. Standard OTel environment
// variables fill in anything the config leaves empty.
func mcpObservabilityConfig(cfg *config.Config, debug bool) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = observability.ModeMCP
	obsCfg.LogJSON = true
	obsCfg.LogLevel = cfg.Logging.SlogLevel()
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio

	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	headers := cfg.Telemetry.OTLPHeaders
	if headers == "" {
		headers = os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")
	}

	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(headers)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure || strings.EqualFold(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"), "true")

	if debug || cfg.Telemetry.DebugTrace {
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.DebugTrace = true
	}

	return obsCfg
}

// grammarReadyCheck reports whether the JavaScript grammar loads, which
// stands in for the whole grammar set.
func grammarReadyCheck(_ context.Context) error {
	_, err := lang.Get(lang.JavaScript)

	return err
}
