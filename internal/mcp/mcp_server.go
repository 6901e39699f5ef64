// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/binbridge/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the binbridge MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.Source) *server.MCPServer {
	s := server.NewMCPServer(
		"binbridge Histogram Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
	}

	s.AddTool(mcp.NewTool("list_objects",
		mcp.WithDescription("List the named objects of a scope together with their kinds (1d, 2d, scope, other)."),
		mcp.WithString("scope", mcp.Description("Slash separated scope path (defaults to the configured scope).")),
		mcp.WithString("pattern", mcp.Description("Glob pattern the names must match, e.g. 'jet*'.")),
	), h.handleListObjects)

	s.AddTool(mcp.NewTool("get_points",
		mcp.WithDescription("Extract a 1D histogram as points with asymmetric error bars."),
		mcp.WithString("name", mcp.Description("Name of the 1D object."), mcp.Required()),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
		mcp.WithNumber("rebin", mcp.Description("Merge this many adjacent bins.")),
		mcp.WithNumber("scale", mcp.Description("Multiply values and errors by this factor.")),
		mcp.WithNumber("x_scale", mcp.Description("Multiply bin centers by this factor.")),
		mcp.WithBoolean("norm", mcp.Description("Scale the result to unit total.")),
		mcp.WithString("norm_to", mcp.Description("Scale the result to the total of this 1D object in the same scope.")),
	), h.handleGetPoints)

	s.AddTool(mcp.NewTool("get_band",
		mcp.WithDescription("Extract a 1D histogram as a central line with a band of one error either side."),
		mcp.WithString("name", mcp.Description("Name of the 1D object."), mcp.Required()),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
		mcp.WithNumber("rebin", mcp.Description("Merge this many adjacent bins.")),
		mcp.WithNumber("scale", mcp.Description("Multiply values and errors by this factor.")),
		mcp.WithNumber("x_scale", mcp.Description("Multiply bin centers by this factor.")),
		mcp.WithBoolean("norm", mcp.Description("Scale the result to unit total.")),
		mcp.WithString("norm_to", mcp.Description("Scale the result to the total of this 1D object in the same scope.")),
	), h.handleGetBand)

	s.AddTool(mcp.NewTool("get_bar",
		mcp.WithDescription("Extract a 1D histogram as bar positions, heights and widths."),
		mcp.WithString("name", mcp.Description("Name of the 1D object."), mcp.Required()),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
		mcp.WithNumber("rebin", mcp.Description("Merge this many adjacent bins.")),
		mcp.WithNumber("scale", mcp.Description("Multiply values by this factor.")),
		mcp.WithNumber("shift", mcp.Description("Offset added to every bar position.")),
		mcp.WithNumber("width_factor", mcp.Description("Fraction of the bin width each bar covers.")),
		mcp.WithBoolean("norm", mcp.Description("Scale the result to unit total.")),
		mcp.WithString("norm_to", mcp.Description("Scale the result to the total of this 1D object in the same scope.")),
	), h.handleGetBar)

	s.AddTool(mcp.NewTool("get_heatmap",
		mcp.WithDescription("Extract a 2D histogram as bin edges and a value matrix. Masked cells are null."),
		mcp.WithString("name", mcp.Description("Name of the 2D object."), mcp.Required()),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
		mcp.WithNumber("rebin_x", mcp.Description("Merge this many adjacent x bins.")),
		mcp.WithNumber("rebin_y", mcp.Description("Merge this many adjacent y bins.")),
		mcp.WithNumber("x_scale", mcp.Description("Multiply x edges by this factor.")),
		mcp.WithNumber("y_scale", mcp.Description("Multiply y edges by this factor.")),
		mcp.WithBoolean("kill_zeros", mcp.Description("Mask cells whose value is zero (default true).")),
		mcp.WithBoolean("transpose", mcp.Description("Swap the x and y axes.")),
	), h.handleGetHeatmap)

	s.AddTool(mcp.NewTool("project",
		mcp.WithDescription("Project a 2D histogram onto one axis and return the result as points."),
		mcp.WithString("name", mcp.Description("Name of the 2D object."), mcp.Required()),
		mcp.WithString("axis", mcp.Description("Axis to keep."), mcp.Required(), mcp.Enum("x", "y")),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
		mcp.WithNumber("first_bin", mcp.Description("First summed bin of the other axis (0-based).")),
		mcp.WithNumber("last_bin", mcp.Description("Last summed bin of the other axis, inclusive. Negative means the last bin.")),
		mcp.WithBoolean("norm", mcp.Description("Scale the result to unit total.")),
		mcp.WithString("norm_to", mcp.Description("Scale the result to the total of this 1D object in the same scope.")),
	), h.handleProject)

	s.AddTool(mcp.NewTool("describe",
		mcp.WithDescription("Summarize a 1D or 2D histogram: bins, sum, mean, standard deviation and axis ticks."),
		mcp.WithString("name", mcp.Description("Name of the object."), mcp.Required()),
		mcp.WithString("scope", mcp.Description("Slash separated scope path.")),
	), h.handleDescribe)

	return s
}

// StartMCPServer starts the binbridge MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.Source) error {
	s := NewMCPServer(baseCfg, src)
	return server.ServeStdio(s)
}
