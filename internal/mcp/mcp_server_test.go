package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/internal/contract"
	mcp_internal "github.com/foredeck/foredeck/internal/mcp"
	"github.com/foredeck/foredeck/schema"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		DatasetDir: ".",
		View:       schema.EvaluationView,
		Offline:    true,
	}
}

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	for _, name := range []string{"prepare_series", "classify_drivers", "reconcile_stories"} {
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	ctx := context.Background()

	t.Run("prepare_series invalid start", func(t *testing.T) {
		tool := s.GetTool("prepare_series")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "prepare_series",
				Arguments: map[string]any{
					"dataset_dir": t.TempDir(),
					"start":       "not-a-date",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid start date")
	})

	t.Run("prepare_series invalid end", func(t *testing.T) {
		tool := s.GetTool("prepare_series")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "prepare_series",
				Arguments: map[string]any{
					"dataset_dir": t.TempDir(),
					"end":         "2024-13-99",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid end date")
	})
}

func TestMCPServerHandlers_ReconcileStoriesOffline(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	tool := s.GetTool("reconcile_stories")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "reconcile_stories",
			Arguments: map[string]any{
				"offline": true,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	// The bundled fixtures are always present, so the listing is never empty
	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "debug")
}
