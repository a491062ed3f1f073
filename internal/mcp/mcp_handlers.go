package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handlePrepareSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetDir = request.GetString("dataset_dir", "")
	if v := request.GetString("view", ""); v != "" {
		cfg.View = schema.ViewKind(v)
	}
	cfg.ClampZero = request.GetBool("clamp_zero", cfg.ClampZero)

	if err := applyWindow(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	bundle, err := core.GetViewResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("view preparation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(bundle, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyDrivers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetDir = request.GetString("dataset_dir", "")
	if d := request.GetString("drivers", ""); d != "" {
		var keys []string
		for _, k := range strings.Split(d, ",") {
			if trimmed := strings.TrimSpace(k); trimmed != "" {
				keys = append(keys, trimmed)
			}
		}
		cfg.DriverKeys = keys
	}

	drivers, err := core.GetDriverResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("driver classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(drivers, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleReconcileStories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if urls := contract.SplitCSVList(request.GetString("feed_url", "")); len(urls) > 0 {
		cfg.FeedURLs = urls
	}
	cfg.Offline = request.GetBool("offline", cfg.Offline)

	stories := core.GetStoryResults(ctx, cfg)

	jsonData, _ := json.MarshalIndent(stories, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyWindow parses the optional start/end arguments into the config window.
func applyWindow(cfg *contract.Config, request mcp.CallToolRequest) error {
	if s := request.GetString("start", ""); s != "" {
		ts, ok := schema.ParseInstant(s)
		if !ok {
			return fmt.Errorf("invalid start date: %q", s)
		}
		cfg.Window.StartTs = &ts
	}
	if e := request.GetString("end", ""); e != "" {
		ts, ok := schema.ParseInstant(e)
		if !ok {
			return fmt.Errorf("invalid end date: %q", e)
		}
		cfg.Window.EndTs = &ts
	}
	return nil
}
