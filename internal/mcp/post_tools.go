// ABOUTME: MCP tool implementations for post operations.
// ABOUTME: Registers list_posts, add_post, delete_post, search_posts, sort_posts.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/controller"
	"github.com/2389-research/postboard/internal/render"
)

const baseURLSchema = `"base_url": {"type": "string", "description": "API base URL, e.g. http://localhost:5002/api. Remembered for later calls."}`

func (s *Server) registerPostTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "Load every post from the API.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				` + baseURLSchema + `
			}
		}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_post",
		Description: "Create a post, then return the reloaded list.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Post title"},
				"content": {"type": "string", "description": "Post body"},
				` + baseURLSchema + `
			},
			"required": ["title", "content"]
		}`),
	}, s.handleAddPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post by id. Returns what remains of the last search results.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "Post id"},
				` + baseURLSchema + `
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_posts",
		Description: "Find posts whose title or content contains the given text. The results are kept for delete_post.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Text to find in titles"},
				"content": {"type": "string", "description": "Text to find in content"},
				` + baseURLSchema + `
			}
		}`),
	}, s.handleSearchPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "sort_posts",
		Description: "List posts ordered by a field.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"field": {"type": "string", "enum": ["title", "content"], "description": "Sort field (default: title)"},
				"direction": {"type": "string", "enum": ["asc", "desc"], "description": "Sort direction (default: asc)"},
				` + baseURLSchema + `
			}
		}`),
	}, s.handleSortPosts)
}

type postArgs struct {
	BaseURL   string `json:"base_url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ID        *int64 `json:"id"`
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

func parseArgs(req *gomcp.CallToolRequest) (postArgs, error) {
	var args postArgs
	if len(req.Params.Arguments) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return args, err
	}
	return args, nil
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	return s.run(ctx, "load posts", args, nil, s.ctrl.Load), nil
}

func (s *Server) handleAddPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	fields := map[render.Field]string{
		render.FieldPostTitle:   args.Title,
		render.FieldPostContent: args.Content,
	}
	return s.run(ctx, "add post", args, fields, s.ctrl.Add), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == nil {
		return toolError("id is required"), nil
	}
	id := *args.ID
	return s.run(ctx, "delete post", args, nil, func() controller.Action {
		return s.ctrl.Delete(id)
	}), nil
}

func (s *Server) handleSearchPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	fields := map[render.Field]string{
		render.FieldSearchTitle:   args.Title,
		render.FieldSearchContent: args.Content,
	}
	return s.run(ctx, "search posts", args, fields, s.ctrl.Search), nil
}

func (s *Server) handleSortPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Field == "" {
		args.Field = "title"
	}
	if args.Direction == "" {
		args.Direction = "asc"
	}
	fields := map[render.Field]string{
		render.FieldSortField:     args.Field,
		render.FieldSortDirection: args.Direction,
	}
	return s.run(ctx, "sort posts", args, fields, s.ctrl.Sort), nil
}

// run fills the page inputs, builds the action and drives it to completion,
// returning the rendered posts.
func (s *Server) run(ctx context.Context, what string, args postArgs, fields map[render.Field]string, build func() controller.Action) *gomcp.CallToolResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if args.BaseURL != "" {
		s.page.SetValue(render.FieldBaseURL, args.BaseURL)
	}
	for f, v := range fields {
		s.page.SetValue(f, v)
	}

	if err := controller.Run(ctx, build()); err != nil {
		return toolError("failed to %s: %v", what, err)
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: formatBlocks(s.page.Blocks())}},
	}
}

func formatBlocks(blocks []render.Block) string {
	if len(blocks) == 0 {
		return "No posts found."
	}

	var sb strings.Builder
	for _, b := range blocks {
		if b.Deletable {
			sb.WriteString(fmt.Sprintf("---\n#%d %s\n", b.Post.ID, b.Post.Title))
		} else {
			sb.WriteString(fmt.Sprintf("---\n%s\n", b.Post.Title))
		}
		sb.WriteString(b.Post.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
