package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/session"
	"github.com/arboclima/arboclima/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	sess    *session.Session
}

func (h *toolHandler) handleAnalyzeLagCorrelation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	input := &contract.ConfigRawInput{
		DataDir:        cfg.DataDir,
		Disease:        request.GetString("disease", string(cfg.Disease)),
		Variable:       request.GetString("climate_variable", string(cfg.Variable)),
		Region:         request.GetString("region", string(cfg.Region)),
		Year:           request.GetInt("year", cfg.Year),
		LagMin:         request.GetInt("lag_min", cfg.LagMin),
		LagMax:         request.GetInt("lag_max", cfg.LagMax),
		Precision:      cfg.Precision,
		Output:         string(schema.JSONOut),
		CacheBackend:   string(cfg.CacheBackend),
		CacheDBConnect: cfg.CacheDBConnect,
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	results, err := h.sess.Analyze(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListDimensions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dimensions := map[string]any{
		"diseases":          []schema.Disease{schema.Dengue, schema.Zika, schema.Chikungunya},
		"climate_variables": []schema.ClimateVariable{schema.Temperature, schema.Precipitation, schema.Humidity},
		"regions":           schema.AllRegions,
	}
	jsonData, _ := json.MarshalIndent(dimensions, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
