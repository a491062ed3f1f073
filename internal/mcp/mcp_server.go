// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foredeck/foredeck/internal/contract"
)

// NewMCPServer initializes and configures the Foredeck MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Foredeck Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: prepare_series ---
	s.AddTool(mcp.NewTool("prepare_series",
		mcp.WithDescription("Reconcile a time-series dataset into a chart-ready view with window, axis domain and drivers."),
		mcp.WithString("dataset_dir", mcp.Description("Directory containing the dataset files."), mcp.Required()),
		mcp.WithString("view", mcp.Description("View kind (evaluation or projection). Defaults to 'evaluation'."), mcp.Enum("evaluation", "projection")),
		mcp.WithString("start", mcp.Description("Inclusive window start date (e.g. '2024-01-01').")),
		mcp.WithString("end", mcp.Description("Inclusive window end date.")),
		mcp.WithBoolean("clamp_zero", mcp.Description("Force the value axis to start at zero for non-negative series.")),
	), h.handlePrepareSeries)

	// --- 2. Tool: classify_drivers ---
	s.AddTool(mcp.NewTool("classify_drivers",
		mcp.WithDescription("Extract exogenous driver signals from a dataset and classify each as bar or line rendering."),
		mcp.WithString("dataset_dir", mcp.Description("Directory containing the dataset files."), mcp.Required()),
		mcp.WithString("drivers", mcp.Description("Comma-separated driver column names. Defaults to discovering every candidate column.")),
	), h.handleClassifyDrivers)

	// --- 3. Tool: reconcile_stories ---
	s.AddTool(mcp.NewTool("reconcile_stories",
		mcp.WithDescription("Merge the live, locally-cached and bundled story streams into a deduplicated listing."),
		mcp.WithString("feed_url", mcp.Description("Comma-separated RSS/Atom feed URLs for the live stream. Empty skips the live fetch.")),
		mcp.WithBoolean("offline", mcp.Description("Skip the live fetch entirely.")),
	), h.handleReconcileStories)

	return s
}

// StartMCPServer starts the Foredeck MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
