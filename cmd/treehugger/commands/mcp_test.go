package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qckfx/tree-hugger-js/internal/observability"
	"github.com/qckfx/tree-hugger-js/pkg/config"
)

func TestMCPCommand_Exists(t *testing.T) {
	t.Parallel()

	cmd := NewMCPCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestMCPCommand_DebugFlag(t *testing.T) {
	t.Parallel()

	cmd := NewMCPCommand()
	flag := cmd.Flags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestMCPCommand_DiagnosticsAddrFlag(t *testing.T) {
	t.Parallel()

	cmd := NewMCPCommand()
	flag := cmd.Flags().Lookup("diagnostics-addr")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}

func TestMCPObservabilityConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	obsCfg := mcpObservabilityConfig(cfg, false)

	assert.Equal(t, observability.ModeMCP, obsCfg.Mode)
	assert.True(t, obsCfg.LogJSON)
	assert.Equal(t, slog.LevelWarn, obsCfg.LogLevel)
	assert.False(t, obsCfg.DebugTrace)
}

func TestMCPObservabilityConfig_DebugOverridesLevel(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	obsCfg := mcpObservabilityConfig(cfg, true)

	assert.Equal(t, slog.LevelDebug, obsCfg.LogLevel)
	assert.True(t, obsCfg.DebugTrace)
}

func TestMCPObservabilityConfig_EndpointFromEnvironment(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel.example.com:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=token")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	obsCfg := mcpObservabilityConfig(cfg, false)

	assert.Equal(t, "otel.example.com:4317", obsCfg.OTLPEndpoint)
	assert.Equal(t, map[string]string{"authorization": "token"}, obsCfg.OTLPHeaders)
}

func TestMCPObservabilityConfig_ConfigWinsOverEnvironment(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "env.example.com:4317")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	cfg.Telemetry.OTLPEndpoint = "cfg.example.com:4317"
	cfg.Telemetry.SampleRatio = 0.5

	obsCfg := mcpObservabilityConfig(cfg, false)

	assert.Equal(t, "cfg.example.com:4317", obsCfg.OTLPEndpoint)
	assert.InDelta(t, 0.5, obsCfg.SampleRatio, 0.0001)
}
