package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Zuo-Peng/epoch-converter/internal/codegen"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func (s *Server) registerTools() {
	unitArg := mcp.WithString("unit",
		mcp.Description("Timestamp unit: seconds, milliseconds or microseconds (s, ms, us). Defaults to "+string(s.unit)+"."))
	tzArg := mcp.WithString("timezone",
		mcp.Description("IANA zone for the local rendering, e.g. Europe/Berlin. Defaults to the server zone."))

	s.mcpServer.AddTool(mcp.NewTool("convert_timestamp",
		mcp.WithDescription("Converts a Unix timestamp to UTC, local, ISO-8601 and relative renderings."),
		mcp.WithString("timestamp", mcp.Required(), mcp.Description("The timestamp to convert.")),
		unitArg,
		tzArg,
	), s.handleConvert)

	s.mcpServer.AddTool(mcp.NewTool("convert_batch",
		mcp.WithDescription("Converts many timestamps at once. Each row succeeds or fails on its own."),
		mcp.WithString("timestamps", mcp.Required(), mcp.Description("Timestamps separated by newlines, commas or semicolons.")),
		unitArg,
		tzArg,
	), s.handleBatch)

	s.mcpServer.AddTool(mcp.NewTool("date_to_timestamp",
		mcp.WithDescription("Parses a date string (ISO-8601, YYYY-MM-DD, RFC 1123, ...) into a Unix timestamp."),
		mcp.WithString("date", mcp.Required(), mcp.Description("The date to parse.")),
		unitArg,
		tzArg,
	), s.handleDate)

	s.mcpServer.AddTool(mcp.NewTool("current_timestamp",
		mcp.WithDescription("Returns the current Unix timestamp plus the Yesterday and Last Week presets."),
		unitArg,
	), s.handleCurrent)

	s.mcpServer.AddTool(mcp.NewTool("code_examples",
		mcp.WithDescription("Returns snippets converting a timestamp in JavaScript, Python, PHP, Java and Go."),
		mcp.WithString("timestamp", mcp.Description("Timestamp to embed. Defaults to now.")),
		mcp.WithString("language", mcp.Description("Only return this language.")),
		unitArg,
	), s.handleCode)
}

func stringArg(req mcp.CallToolRequest, name string) string {
	v, _ := req.Params.Arguments[name].(string)
	return strings.TrimSpace(v)
}

func (s *Server) unitArg(req mcp.CallToolRequest) (timestamp.Unit, error) {
	raw := stringArg(req, "unit")
	if raw == "" {
		return s.unit, nil
	}
	return timestamp.ParseUnit(raw)
}

func (s *Server) tzArg(req mcp.CallToolRequest) string {
	if tz := stringArg(req, "timezone"); tz != "" {
		return tz
	}
	return s.tz
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := stringArg(req, "timestamp")
	if input == "" {
		return mcp.NewToolResultError("'timestamp' parameter is required and must be a non-empty string."), nil
	}
	unit, err := s.unitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !timestamp.Validate(input, unit) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid timestamp %q for unit %s", input, unit)), nil
	}

	res, err := timestamp.ConvertAt(timestamp.ParseNumber(input), unit, s.tzArg(req), s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.Debug().Str("input", input).Str("unit", string(unit)).Msg("mcp convert")
	return jsonResult(res)
}

func (s *Server) handleBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := req.Params.Arguments["timestamps"].(string)
	inputs := timestamp.SplitInputs(raw)
	if len(inputs) == 0 {
		return mcp.NewToolResultError("'timestamps' parameter is required and must be a non-empty string."), nil
	}
	unit, err := s.unitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := timestamp.ConvertBatchAt(inputs, unit, s.tzArg(req), s.now())
	s.log.Debug().Int("total", res.Total).Int("failed", res.Failed).Msg("mcp batch")
	return jsonResult(res)
}

func (s *Server) handleDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := stringArg(req, "date")
	if date == "" {
		return mcp.NewToolResultError("'date' parameter is required and must be a non-empty string."), nil
	}
	unit, err := s.unitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tz := s.tzArg(req)
	loc, err := timestamp.LoadZone(tz)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, err := timestamp.ParseDate(date, unit, loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := timestamp.ConvertAt(v, unit, tz, s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"timestamp": v,
		"unit":      unit,
		"result":    res,
	})
}

func (s *Server) handleCurrent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unit, err := s.unitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	now := s.now()
	return jsonResult(map[string]any{
		"timestamp": timestamp.CurrentAt(unit, now),
		"unit":      unit,
		"iso8601":   now.UTC().Format(timestamp.LayoutISO8601),
		"presets":   timestamp.Presets(unit, now),
	})
}

func (s *Server) handleCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unit, err := s.unitArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ts := timestamp.CurrentAt(unit, s.now())
	if raw := stringArg(req, "timestamp"); raw != "" {
		ts = timestamp.ParseNumber(raw)
		if math.IsNaN(ts) || math.IsInf(ts, 0) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid timestamp %q", raw)), nil
		}
	}

	if lang := stringArg(req, "language"); lang != "" {
		ex, err := codegen.ForLanguage(lang, ts, unit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult([]codegen.Example{ex})
	}
	exs, err := codegen.Examples(ts, unit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(exs)
}
