// Package mcp exposes a running animator system as a Model Context Protocol
// server, so agents can inspect the tree and drive it through tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/internal/presentation/graph"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/persistence"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	nodesURI = "animator://nodes"
	graphURI = "animator://graph"
)

// Executor runs fn on the goroutine that owns the system.
// scheduler.Loop implements it.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// Server wraps an animator system and exposes it as an MCP server.
type Server struct {
	system    *animator.System
	executor  Executor
	store     ports.OverrideStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithStore persists settings changes made through the tools.
func WithStore(store ports.OverrideStore) Option {
	return func(s *Server) { s.store = store }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates an MCP server for sys. Every access to sys goes through exec.
func NewServer(sys *animator.System, exec Executor, opts ...Option) *Server {
	s := &Server{
		system:    sys,
		executor:  exec,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("animator-mcp", strings.TrimSpace(animator.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves on Stdin/Stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop MCP server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_nodes",
		mcp.WithDescription("List every node of the root subtree, parents first, with state and settings."),
	), s.handleListNodes)

	s.mcpServer.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Get one node by ID or scene name."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node ID or scene name")),
	), s.handleGetNode)

	actions := make([]string, 0, len(domain.Actions))
	for _, a := range domain.Actions {
		actions = append(actions, string(a))
	}
	s.mcpServer.AddTool(mcp.NewTool("send_action",
		mcp.WithDescription("Send an action to a node and return its state right after."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node ID or scene name")),
		mcp.WithString("action", mcp.Required(), mcp.Description("Action name"), mcp.Enum(actions...)),
	), s.handleSendAction)

	s.mcpServer.AddTool(mcp.NewTool("set_settings",
		mcp.WithDescription("Replace the dynamic settings of a node. The node is updated and its parent refreshed."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node ID or scene name")),
		mcp.WithObject("settings", mcp.Required(), mcp.Description("Settings keys, e.g. {\"condition\": true, \"duration\": {\"enter\": 0.2}}")),
	), s.handleSetSettings)

	s.mcpServer.AddTool(mcp.NewTool("clear_settings",
		mcp.WithDescription("Drop the dynamic settings of a node and their stored copy."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node ID or scene name")),
	), s.handleClearSettings)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(nodesURI, "Animator Nodes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		nodes, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(nodes)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: nodesURI, MIMEType: "application/json", Text: string(jsonBytes)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Animator Graph",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		nodes, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: graphURI, MIMEType: "text/plain", Text: graph.GenerateMermaid(nodes, true)},
		}, nil
	})
}

var (
	errNodeNotFound = errors.New("node not found")
	errDetached     = errors.New("node is detached")
)

func (s *Server) snapshot(ctx context.Context) ([]domain.NodeSnapshot, error) {
	var nodes []domain.NodeSnapshot
	if err := s.executor.Do(ctx, func() { nodes = s.system.Snapshot() }); err != nil {
		return nil, fmt.Errorf("system unavailable: %w", err)
	}
	if nodes == nil {
		nodes = []domain.NodeSnapshot{}
	}
	return nodes, nil
}

// lookup finds a node by ID or by scene name. Must run on the executor.
func (s *Server) lookup(key string) (*animator.Node, error) {
	if n, ok := s.system.Node(domain.NodeID(key)); ok {
		return n, nil
	}
	for _, n := range s.system.Nodes() {
		if n.Name() == key {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errNodeNotFound, key)
}

// withNode runs fn on the executor with the named node and returns the node
// snapshot taken right after fn as the tool result. Failures become tool
// errors so the agent can read them.
func (s *Server) withNode(ctx context.Context, request mcp.CallToolRequest, fn func(n *animator.Node) error) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("node")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var (
		snap  domain.NodeSnapshot
		opErr error
	)
	err = s.executor.Do(ctx, func() {
		n, err := s.lookup(key)
		if err != nil {
			opErr = err
			return
		}
		if fn != nil {
			if opErr = fn(n); opErr != nil {
				return
			}
		}
		for _, candidate := range s.system.Snapshot() {
			if candidate.ID == n.ID() {
				snap = candidate
				return
			}
		}
		opErr = fmt.Errorf("%w: %s", errDetached, key)
	})
	if err != nil {
		return nil, fmt.Errorf("system unavailable: %w", err)
	}
	if opErr != nil {
		s.logger.Warn("MCP tool rejected", "tool", request.Params.Name, "node", key, "error", opErr)
		return mcp.NewToolResultError(opErr.Error()), nil
	}
	return jsonResult(snap)
}

func (s *Server) handleListNodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(nodes)
}

func (s *Server) handleGetNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withNode(ctx, request, nil)
}

func (s *Server) handleSendAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := domain.ParseAction(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.withNode(ctx, request, func(n *animator.Node) error {
		n.Send(action)
		return nil
	})
}

func (s *Server) handleSetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	props, err := settingsArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.withNode(ctx, request, func(n *animator.Node) error {
		if err := persistence.Override(n, props); err != nil {
			return err
		}
		return s.persist(ctx, n, props)
	})
}

func (s *Server) handleClearSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withNode(ctx, request, func(n *animator.Node) error {
		if err := persistence.Clear(n); err != nil {
			return err
		}
		return s.persist(ctx, n, nil)
	})
}

// settingsArg reads the settings argument, given either as an object or as
// a JSON string.
func settingsArg(request mcp.CallToolRequest) (map[string]any, error) {
	switch v := request.GetArguments()["settings"].(type) {
	case map[string]any:
		return v, nil
	case string:
		var props map[string]any
		if err := json.Unmarshal([]byte(v), &props); err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		return props, nil
	default:
		return nil, errors.New("settings: required object")
	}
}

// persist runs on the executor so the store sees changes in call order.
func (s *Server) persist(ctx context.Context, n *animator.Node, props map[string]any) error {
	if s.store == nil {
		return nil
	}
	var err error
	if len(props) == 0 {
		err = s.store.Delete(ctx, s.system.ID(), persistence.Key(n))
	} else {
		err = s.store.Save(ctx, s.system.ID(), persistence.Key(n), props)
	}
	if err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
