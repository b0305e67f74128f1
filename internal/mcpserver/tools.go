// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/output"
	"github.com/davetashner/tense/internal/parser"
	"github.com/davetashner/tense/internal/resolver"
	"github.com/davetashner/tense/internal/safeeval"
	"github.com/davetashner/tense/internal/tensefile"
	"github.com/davetashner/tense/internal/units"
)

// ParseInput is the input schema for the tense parse MCP tool.
type ParseInput struct {
	Text      string `json:"text" jsonschema:"Duration text to parse, e.g. 1h 30min or 2 days"`
	Path      string `json:"path,omitempty" jsonschema:"Directory whose tense files configure the units (defaults to current directory)"`
	Smart     bool   `json:"smart,omitempty" jsonschema:"Use the smart resolver, which tolerates prose and punctuation"`
	Timedelta bool   `json:"timedelta,omitempty" jsonschema:"Also render the total as a duration string"`
}

// ParseOutput is the JSON body returned by the parse tool.
type ParseOutput struct {
	Seconds  int64  `json:"seconds"`
	Duration string `json:"duration,omitempty"`
}

// CompileInput is the input schema for the tense compile MCP tool.
type CompileInput struct {
	Source   string `json:"source,omitempty" jsonschema:"Tense file source text to compile"`
	File     string `json:"file,omitempty" jsonschema:"Path of a tense, yaml, toml or json file to compile instead of source"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json, yaml, toml, tense (default: json)"`
	Defaults bool   `json:"defaults,omitempty" jsonschema:"Merge the result onto the built-in unit table"`
}

// EvalInput is the input schema for the tense eval MCP tool.
type EvalInput struct {
	Expr string `json:"expr" jsonschema:"Integer expression, e.g. week * 2 + day; unit names are constants in seconds"`
}

// UnitsInput is the input schema for the tense units MCP tool.
type UnitsInput struct {
	Path string `json:"path,omitempty" jsonschema:"Directory whose tense files configure the units (defaults to current directory)"`
}

// UnitInfo describes one unit in the units tool output.
type UnitInfo struct {
	Name     string   `json:"name"`
	Duration int64    `json:"duration"`
	Aliases  []string `json:"aliases"`
	Virtual  bool     `json:"virtual,omitempty"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all tense tools to the MCP server.
func registerTools(server *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a human duration such as '1h 30min' into seconds using the built-in units and any tense files for the directory.",
		Annotations: readOnly,
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile tense file source (or a file) into a unit configuration and render it as json, yaml, toml or tense.",
		Annotations: readOnly,
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "eval",
		Description: "Evaluate an integer expression with + - * / and parentheses; second, minute, hour, day, week and year are constants in seconds.",
		Annotations: readOnly,
	}, handleEval)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "units",
		Description: "List the units, durations and aliases in effect for a directory.",
		Annotations: readOnly,
	}, handleUnits)
}

// loadTense builds the unit model for the directory at path.
func loadTense(path string) (*units.Tense, error) {
	pathInfo, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	m, err := tensefile.LoadConfig(pathInfo.ConfigRoot, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return units.FromMapping(m)
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input ParseInput) (*mcp.CallToolResult, any, error) {
	tense, err := loadTense(input.Path)
	if err != nil {
		return nil, nil, err
	}

	var opts []parser.Option
	if input.Smart {
		opts = append(opts, parser.WithResolver(resolver.Smart))
	}

	seconds, err := parser.NewDigit(tense, opts...).Parse(input.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("parse failed: %w", err)
	}
	out := ParseOutput{Seconds: seconds}
	if input.Timedelta {
		d, err := parser.ToDuration(seconds)
		if err != nil {
			return nil, nil, fmt.Errorf("parse failed: %w", err)
		}
		out.Duration = parser.FormatDuration(d)
	}

	return jsonResult(out)
}

func handleCompile(_ context.Context, _ *mcp.CallToolRequest, input CompileInput) (*mcp.CallToolResult, any, error) {
	if (input.Source == "") == (input.File == "") {
		return nil, nil, fmt.Errorf("exactly one of source or file is required")
	}

	// Determine format (default to json for MCP consumers).
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}

	var m *config.Mapping
	if input.File != "" {
		m, err = tensefile.Load(input.File)
	} else {
		m, err = tensefile.Compile(input.Source)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("compile failed: %w", err)
	}
	if input.Defaults {
		if m, err = config.Merge(config.Default(), m); err != nil {
			return nil, nil, err
		}
	}

	var buf bytes.Buffer
	if err := formatter.Format(m, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func handleEval(_ context.Context, _ *mcp.CallToolRequest, input EvalInput) (*mcp.CallToolResult, any, error) {
	v, err := safeeval.Evaluate(input.Expr, tensefile.UnitConstants())
	if err != nil {
		return nil, nil, err
	}
	return textResult(strconv.FormatInt(v, 10)), nil, nil
}

func handleUnits(_ context.Context, _ *mcp.CallToolRequest, input UnitsInput) (*mcp.CallToolResult, any, error) {
	tense, err := loadTense(input.Path)
	if err != nil {
		return nil, nil, err
	}
	list := tense.Units()
	infos := make([]UnitInfo, len(list))
	for i, u := range list {
		infos[i] = UnitInfo{Name: u.Name, Duration: u.Duration, Aliases: u.Aliases, Virtual: u.Virtual()}
	}
	return jsonResult(infos)
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
