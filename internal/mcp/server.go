// ABOUTME: MCP server initialization and configuration for postboard.
// ABOUTME: Exposes the post controller's actions as tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"sync"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/controller"
	"github.com/2389-research/postboard/internal/render"
)

// Server wraps the MCP server with a post controller over a headless page.
type Server struct {
	mcp  *gomcp.Server
	ctrl *controller.Controller
	page *render.Document

	// mu serialises tool calls: the page and session have a single owner.
	mu sync.Mutex
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithVersion overrides the implementation version reported to clients.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.mcp = newMCPServer(v)
	}
}

// NewServer creates an MCP server with post tools. ctrl must have been built over page.
func NewServer(ctrl *controller.Controller, page *render.Document, opts ...ServerOption) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("controller is required")
	}
	if page == nil {
		return nil, fmt.Errorf("page is required")
	}

	s := &Server{
		mcp:  newMCPServer("1.0.0"),
		ctrl: ctrl,
		page: page,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerPostTools()

	return s, nil
}

func newMCPServer(version string) *gomcp.Server {
	return gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "postboard",
			Version: version,
		},
		nil,
	)
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
