package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

var refNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestServer() *Server {
	return NewServer("test", Options{
		DefaultUnit:     timestamp.Seconds,
		DefaultTimezone: "UTC",
		Log:             zerolog.Nop(),
		Now:             func() time.Time { return refNow },
	})
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestConvertTimestamp(t *testing.T) {
	s := newTestServer()
	res, err := s.handleConvert(context.Background(), request(map[string]any{
		"timestamp": "1640995200000",
		"unit":      "ms",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got timestamp.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, timestamp.Milliseconds, got.Unit)
	assert.Equal(t, "2022-01-01T00:00:00.000Z", got.HumanReadable.ISO8601)
	assert.Equal(t, int64(1640995200), got.Formatted.Timestamp)
}

func TestConvertTimestamp_Errors(t *testing.T) {
	s := newTestServer()
	tests := map[string]map[string]any{
		"missing":  {},
		"invalid":  {"timestamp": "-5"},
		"unit":     {"timestamp": "0", "unit": "minutes"},
		"timezone": {"timestamp": "0", "timezone": "Nowhere/Zone"},
	}
	for name, args := range tests {
		res, err := s.handleConvert(context.Background(), request(args))
		require.NoError(t, err, name)
		assert.True(t, res.IsError, name)
	}
}

func TestConvertBatch(t *testing.T) {
	s := newTestServer()
	res, err := s.handleBatch(context.Background(), request(map[string]any{
		"timestamps": "0, abc\n86400",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got timestamp.BatchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Successful)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, "batch-1714564800000-1", got.Items[1].ID)
	assert.Equal(t, timestamp.ReasonInvalidTimestamp, got.Items[1].Error)

	res, err = s.handleBatch(context.Background(), request(map[string]any{"timestamps": ""}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDateToTimestamp(t *testing.T) {
	s := newTestServer()
	res, err := s.handleDate(context.Background(), request(map[string]any{"date": "2022-01-01"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got struct {
		Timestamp float64          `json:"timestamp"`
		Unit      timestamp.Unit   `json:"unit"`
		Result    timestamp.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, float64(1640995200), got.Timestamp)
	assert.Equal(t, timestamp.Seconds, got.Unit)

	res, err = s.handleDate(context.Background(), request(map[string]any{"date": "not a date"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCurrentTimestamp(t *testing.T) {
	s := newTestServer()
	res, err := s.handleCurrent(context.Background(), request(map[string]any{"unit": "ms"}))
	require.NoError(t, err)

	var got struct {
		Timestamp float64            `json:"timestamp"`
		ISO8601   string             `json:"iso8601"`
		Presets   []timestamp.Preset `json:"presets"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, float64(refNow.UnixMilli()), got.Timestamp)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", got.ISO8601)
	require.Len(t, got.Presets, 3)
	assert.Equal(t, "Last Week", got.Presets[2].Label)
}

func TestCodeExamples(t *testing.T) {
	s := newTestServer()
	res, err := s.handleCode(context.Background(), request(map[string]any{"timestamp": "0", "language": "python"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "timestamp = 0")

	res, err = s.handleCode(context.Background(), request(nil))
	require.NoError(t, err)
	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &all))
	assert.Len(t, all, 5)

	res, err = s.handleCode(context.Background(), request(map[string]any{"language": "cobol"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
