package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/binbridge/core"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.Source
}

// prepare clones the base config, applies the common arguments and opens the scope.
func (h *toolHandler) prepare(request mcp.CallToolRequest) (*contract.Config, *core.Container, error) {
	cfg := h.baseCfg.Clone()
	cfg.Name = request.GetString("name", "")
	if s := request.GetString("scope", ""); s != "" {
		cfg.Scope = contract.SplitScope(s)
	}
	c, err := core.OpenContainer(h.src, cfg.Scope)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

// applySeriesArgs reads the rebin and scale arguments shared by the 1D tools.
func applySeriesArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	cfg.Rebin = request.GetInt("rebin", cfg.Rebin)
	if cfg.Rebin < 1 {
		return fmt.Errorf("rebin must be a positive integer (received %d)", cfg.Rebin)
	}
	cfg.Scale = request.GetFloat("scale", cfg.Scale)
	cfg.XScale = request.GetFloat("x_scale", cfg.XScale)
	return applyNormArgs(cfg, request)
}

// applyNormArgs reads the normalization arguments of the 1D tools.
func applyNormArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	cfg.Norm = request.GetBool("norm", cfg.Norm)
	cfg.NormTo = request.GetString("norm_to", cfg.NormTo)
	if cfg.Norm && cfg.NormTo != "" {
		return fmt.Errorf("norm and norm_to cannot be combined")
	}
	return nil
}

func textResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListObjects(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	cfg.Pattern = request.GetString("pattern", "")

	listing, err := core.GetListingResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	return textResult(listing)
}

func (h *toolHandler) handleGetPoints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	if err := applySeriesArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	points, err := core.GetPointsResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return textResult(points)
}

func (h *toolHandler) handleGetBand(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	if err := applySeriesArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	band, err := core.GetBandResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return textResult(band)
}

func (h *toolHandler) handleGetBar(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	if err := applySeriesArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.Shift = request.GetFloat("shift", cfg.Shift)
	cfg.WidthFactor = request.GetFloat("width_factor", cfg.WidthFactor)
	if cfg.WidthFactor <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: width_factor must be greater than 0 (received %g)", cfg.WidthFactor)), nil
	}

	bars, err := core.GetBarResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return textResult(bars)
}

func (h *toolHandler) handleGetHeatmap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	cfg.RebinX = request.GetInt("rebin_x", cfg.RebinX)
	cfg.RebinY = request.GetInt("rebin_y", cfg.RebinY)
	if cfg.RebinX < 1 || cfg.RebinY < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: rebin factors must be positive (received %d, %d)", cfg.RebinX, cfg.RebinY)), nil
	}
	cfg.XScale = request.GetFloat("x_scale", cfg.XScale)
	cfg.YScale = request.GetFloat("y_scale", cfg.YScale)
	cfg.KillZeros = request.GetBool("kill_zeros", cfg.KillZeros)
	cfg.Transpose = request.GetBool("transpose", cfg.Transpose)

	heatmap, err := core.GetHeatmapResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return textResult(heatmap)
}

func (h *toolHandler) handleProject(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("projection failed: %v", err)), nil
	}
	cfg.Axis = schema.Axis(request.GetString("axis", ""))
	if cfg.Axis != schema.XAxis && cfg.Axis != schema.YAxis {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: axis must be x or y (received %q)", cfg.Axis)), nil
	}
	cfg.FirstBin = request.GetInt("first_bin", 0)
	cfg.LastBin = request.GetInt("last_bin", -1)
	if err := applyNormArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	points, err := core.GetProjectionResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("projection failed: %v", err)), nil
	}
	return textResult(points)
}

func (h *toolHandler) handleDescribe(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, c, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}

	summary, err := core.GetSummaryResult(c, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	return textResult(summary)
}
