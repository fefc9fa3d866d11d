// Package mcp exposes a Sequent session as a Model Context Protocol
// server, so agent hosts can drive proof construction as tool calls. Every
// tool routes through the same operation registry as the line protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sequentlabs/sequent/pkg/protocol"
)

// Server wraps the protocol dispatcher and exposes it as an MCP server.
type Server struct {
	disp      *protocol.Dispatcher
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server over a session dispatcher.
func NewServer(disp *protocol.Dispatcher, version string) *Server {
	s := &Server{
		disp:      disp,
		mcpServer: server.NewMCPServer("sequent-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// invoke routes a tool call through the operation registry and renders
// the result as a JSON text block.
func (s *Server) invoke(ctx context.Context, method string, params map[string]any) (*mcp.CallToolResult, error) {
	result, err := s.disp.Invoke(ctx, method, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", method, err)), nil
	}
	buf, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: encoding failed: %v", method, err)), nil
	}
	return mcp.NewToolResultText(string(buf)), nil
}

func (s *Server) registerTools() {
	// TOOL: apply_step
	s.mcpServer.AddTool(mcp.NewTool("apply_step",
		mcp.WithDescription("Apply one proof step to a checkpoint, producing a new checkpoint."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to act on")),
		mcp.WithString("step", mcp.Required(), mcp.Description("Step text to execute")),
		mcp.WithNumber("budget", mcp.Description("Step budget (0 = server default)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "applyStep", request.GetArguments())
	})

	// TOOL: query_state
	s.mcpServer.AddTool(mcp.NewTool("query_state",
		mcp.WithDescription("List the open goals of a checkpoint."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to inspect")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "queryState", request.GetArguments())
	})

	// TOOL: query_messages
	s.mcpServer.AddTool(mcp.NewTool("query_messages",
		mcp.WithDescription("List the diagnostic log accumulated at a checkpoint."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to inspect")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "queryMessages", request.GetArguments())
	})

	// TOOL: resolve_name
	s.mcpServer.AddTool(mcp.NewTool("resolve_name",
		mcp.WithDescription("Resolve a global name at a checkpoint."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to act in")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to resolve")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "resolveName", request.GetArguments())
	})

	// TOOL: unify
	s.mcpServer.AddTool(mcp.NewTool("unify",
		mcp.WithDescription("Attempt to unify two expressions at a checkpoint."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to act in")),
		mcp.WithString("exprA", mcp.Required(), mcp.Description("First expression")),
		mcp.WithString("exprB", mcp.Required(), mcp.Description("Second expression")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "unify", request.GetArguments())
	})

	// TOOL: new_state
	s.mcpServer.AddTool(mcp.NewTool("new_state",
		mcp.WithDescription("Build a fresh context from named, typed obligations."),
		mcp.WithString("goals", mcp.Required(),
			mcp.Description(`JSON array of obligations, e.g. [{"name":"h","type":"Nat"}]`)),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if raw, ok := args["goals"].(string); ok {
			var goals []map[string]any
			if err := json.Unmarshal([]byte(raw), &goals); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("goals is not a JSON array: %v", err)), nil
			}
			args["goals"] = goals
		}
		return s.invoke(ctx, "newState", args)
	})

	// TOOL: give_up
	s.mcpServer.AddTool(mcp.NewTool("give_up",
		mcp.WithDescription("Admit every open goal of a checkpoint without proof."),
		mcp.WithNumber("stateId", mcp.Required(), mcp.Description("Checkpoint to act on")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "giveUp", request.GetArguments())
	})

	// TOOL: position
	s.mcpServer.AddTool(mcp.NewTool("position",
		mcp.WithDescription("Report the ambient source position, if any."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.invoke(ctx, "position", map[string]any{})
	})
}
