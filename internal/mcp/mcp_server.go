// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Arboclima MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, sess *session.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Arboclima Correlation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		sess:    sess,
	}

	s.AddTool(mcp.NewTool("analyze_lag_correlation",
		mcp.WithDescription("Correlate a disease incidence series with a lag-shifted climate series for one macro-region and year, across a range of lags."),
		mcp.WithString("disease", mcp.Description("Arbovirus name (dengue, zika, chikungunya)."), mcp.Enum("dengue", "zika", "chikungunya"), mcp.Required()),
		mcp.WithString("climate_variable", mcp.Description("Climate variable (temperature, precipitation, humidity)."), mcp.Enum("temperature", "precipitation", "humidity"), mcp.Required()),
		mcp.WithString("region", mcp.Description("Macro-region code (norte, nordeste, centro-oeste, sudeste, sul)."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Calendar year of both series."), mcp.Required()),
		mcp.WithNumber("lag_min", mcp.Description("Smallest lag in months (defaults to 0).")),
		mcp.WithNumber("lag_max", mcp.Description("Largest lag in months (defaults to 3).")),
	), h.handleAnalyzeLagCorrelation)

	s.AddTool(mcp.NewTool("list_dimensions",
		mcp.WithDescription("List the diseases, climate variables and macro-regions available for analysis."),
	), h.handleListDimensions)

	return s
}

// StartMCPServer starts the Arboclima MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, sess *session.Session) error {
	s := NewMCPServer(baseCfg, sess)
	return server.ServeStdio(s)
}
