package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestLoggingMiddleware(t *testing.T) {
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
		Name:      "ask",
		Arguments: json.RawMessage(`{"video":"dQw4w9WgXcQ","question":"why?"}`),
	}}

	tests := []struct {
		name      string
		result    mcp.Result
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"success", &mcp.CallToolResult{}, nil, "DEBUG", "request completed"},
		{"tool error", &mcp.CallToolResult{IsError: true}, nil, "WARN", "tool returned error"},
		{"protocol error", nil, errors.New("boom"), "ERROR", "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := captureLogger()
			next := func(context.Context, string, mcp.Request) (mcp.Result, error) {
				return tt.result, tt.err
			}

			_, err := LoggingMiddleware(logger)(next)(context.Background(), "tools/call", req)
			assert.Equal(t, tt.err, err)

			rec := lastRecord(t, buf)
			assert.Equal(t, tt.wantLevel, rec["level"])
			assert.Equal(t, tt.wantMsg, rec["msg"])
			assert.Equal(t, "tools/call", rec["method"])
			assert.Equal(t, "ask", rec["tool"])
			assert.Equal(t, `{"video":"dQw4w9WgXcQ","question":"why?"}`, rec["params"])
		})
	}
}

func TestLoggingMiddleware_NonToolRequest(t *testing.T) {
	logger, buf := captureLogger()
	next := func(context.Context, string, mcp.Request) (mcp.Result, error) {
		return &mcp.ListToolsResult{}, nil
	}

	_, err := LoggingMiddleware(logger)(next)(context.Background(), "tools/list", &mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
	require.NoError(t, err)

	rec := lastRecord(t, buf)
	assert.NotContains(t, rec, "tool")
	assert.Equal(t, "tools/list", rec["method"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Less(t, slowRequestThreshold, time.Minute)
}
