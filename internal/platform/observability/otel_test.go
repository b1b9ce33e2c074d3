package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestNewLoggerJSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("petcare-api", LogSettings{Level: slog.LevelInfo, Output: &buf})

	logger.Debug("hidden")
	logger.Info("order placed", slog.String("order_id", "CBC0001"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "petcare-api", entry["service"])
	require.Equal(t, "CBC0001", entry["order_id"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("petcare-worker", LogSettings{Format: "text", Output: &buf}).Warn("retrying")
	require.Contains(t, buf.String(), "service=petcare-worker")
	require.Contains(t, buf.String(), "level=WARN")
}

func TestInstrumentsAreNilSafe(t *testing.T) {
	var missing *Instruments
	require.NotNil(t, missing.Tracer("petcare"))
	require.NotNil(t, missing.Meter("petcare"))

	discard := Discard()
	_, span := discard.Tracer("petcare").Start(context.Background(), "noop")
	span.End()
	counter, err := discard.Meter("petcare").Int64Counter("petcare.test")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
