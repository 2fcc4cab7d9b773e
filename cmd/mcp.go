package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the project store as MCP tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		return runMCP(cmd.Context(), transport, addr)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "stdio|http")
	mcpCmd.Flags().String("addr", ":8090", "addr for http")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(ctx context.Context, transport, addr string) error {
	store := storeFromConfig()

	s := server.NewMCPServer(
		"appweave-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	listTool := mcp.NewTool("project.list",
		mcp.WithDescription("List every stored project with id, name, prompt and file count."),
	)
	s.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := store.Load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load projects: %v", err)), nil
		}
		summaries := make([]map[string]any, 0, len(projects))
		for _, p := range projects {
			summaries = append(summaries, map[string]any{
				"id":         p.ID,
				"name":       p.Title(),
				"prompt":     p.Prompt,
				"file_count": len(p.Files),
				"created_at": p.CreatedAt,
			})
		}
		res, err := mcp.NewToolResultJSON(map[string]any{
			"count":    len(summaries),
			"projects": summaries,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
		}
		return res, nil
	})

	getTool := mcp.NewTool("project.get",
		mcp.WithDescription("Return the full project (plan, files, review) for an id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	)
	s.AddTool(getTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("missing id"), nil
		}
		project, err := store.Get(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := json.Marshal(project)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal project: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	exportTree := mcp.NewTool("project.export_tree",
		mcp.WithDescription("Return a project's files as a JSON array of {path, content} entries."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	)
	s.AddTool(exportTree, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("missing id"), nil
		}
		project, err := store.Get(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		type fileEntry struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}
		entries := make([]fileEntry, 0, len(project.Files))
		for _, row := range src.FlattenFileTree(src.BuildFileTree(project.TreeFiles())) {
			if row.Dir {
				continue
			}
			entries = append(entries, fileEntry{Path: row.Path, Content: project.Files[row.Path]})
		}
		res, err := mcp.NewToolResultJSON(map[string]any{
			"id":    project.ID,
			"count": len(entries),
			"tree":  entries,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
		}
		return res, nil
	})

	importTree := mcp.NewTool("project.import_tree",
		mcp.WithDescription("Create a project from a JSON array of {path, content} entries. Plan and review are inferred by the model."),
		mcp.WithString("tree_json", mcp.Required(), mcp.Description("JSON array of {path, content} objects")),
	)
	s.AddTool(importTree, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		treeJSON, err := req.RequireString("tree_json")
		if err != nil {
			return mcp.NewToolResultError("missing tree_json"), nil
		}
		var entries []struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal([]byte(treeJSON), &entries); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid tree_json: %v", err)), nil
		}
		files := map[string]string{}
		for _, e := range entries {
			if e.Path != "" {
				files[e.Path] = e.Content
			}
		}

		gen, _, err := buildDeps(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build model client: %v", err)), nil
		}
		project, err := gen.Import(ctx, &src.ImportedArchive{Files: files})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
		}
		res, err := mcp.NewToolResultJSON(map[string]any{
			"status":     "imported",
			"id":         project.ID,
			"name":       project.Title(),
			"file_count": len(project.Files),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
		}
		return res, nil
	})

	switch transport {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			return err
		}
	case "http":
		h := server.NewStreamableHTTPServer(s)
		log.Printf("HTTP listening on %s", addr)
		if err := h.Start(addr); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown transport: %s", transport)
	}
	return nil
}
