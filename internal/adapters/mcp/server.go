// Package mcp exposes the playback engine to AI agents over the Model
// Context Protocol: stateless tools that resolve a step's view, run the
// directive matcher, and lint payloads.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lumilearn/chalkboard"
	"github.com/lumilearn/chalkboard/pkg/annotate"
	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// StepView is the structured result of the describe_step tool.
type StepView struct {
	Index      int                     `json:"index" jsonschema_description:"Zero-based index of the resolved step"`
	Count      int                     `json:"count" jsonschema_description:"Effective step count including the synthetic summary step"`
	StepID     string                  `json:"step_id,omitempty"`
	Title      string                  `json:"title,omitempty"`
	Type       string                  `json:"type,omitempty"`
	Narration  string                  `json:"narration" jsonschema_description:"Narration resolved for the requested language"`
	BoardNotes []string                `json:"board_notes,omitempty"`
	Directives []explanation.Directive `json:"directives,omitempty"`
}

// AnnotateResult is the structured result of the annotate tool.
type AnnotateResult struct {
	Segments []annotate.Segment `json:"segments"`
}

// LintResult is the structured result of the validate_explanation tool.
type LintResult struct {
	Valid  bool                          `json:"valid"`
	Issues []explanation.ValidationIssue `json:"issues,omitempty"`
}

// Server wraps an MCP server around the engine's pure operations.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer() *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("chalkboard-mcp", chalkboard.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	describeTool := mcp.NewTool("describe_step",
		mcp.WithDescription("Resolve one step of an explanation payload: narration for the requested language, board notes and annotation directives."),
		mcp.WithString("explanation", mcp.Required(), mcp.Description("The explanation payload as a JSON object string")),
		mcp.WithNumber("step", mcp.Description("Zero-based step index into the effective step list (default 0)")),
		mcp.WithString("language", mcp.Description("Narration language override (e.g. en, zh)")),
		mcp.WithOutputSchema[StepView](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeStep))

	annotateTool := mcp.NewTool("annotate",
		mcp.WithDescription("Run the directive matcher over a text block and return plain/matched segments."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The raw text block")),
		mcp.WithString("directives", mcp.Required(), mcp.Description("JSON array of annotation directives")),
		mcp.WithOutputSchema[AnnotateResult](),
	)
	s.mcpServer.AddTool(annotateTool, mcp.NewStructuredToolHandler(s.handleAnnotate))

	lintTool := mcp.NewTool("validate_explanation",
		mcp.WithDescription("Lint an explanation payload and report issues."),
		mcp.WithString("explanation", mcp.Required(), mcp.Description("The explanation payload as a JSON object string")),
		mcp.WithOutputSchema[LintResult](),
	)
	s.mcpServer.AddTool(lintTool, mcp.NewStructuredToolHandler(s.handleLint))
}

func decodePayloadArg(args map[string]interface{}) (*explanation.Explanation, error) {
	raw, _ := args["explanation"].(string)
	if raw == "" {
		return nil, fmt.Errorf("explanation argument is required")
	}
	var e explanation.Explanation
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("invalid explanation payload: %w", err)
	}
	return &e, nil
}

func (s *Server) handleDescribeStep(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepView, error) {
	e, err := decodePayloadArg(args)
	if err != nil {
		return StepView{}, err
	}

	index := 0
	if n, ok := args["step"].(float64); ok {
		index = int(n)
	}
	lang := e.Lang()
	if l, ok := args["language"].(string); ok && l != "" {
		lang = l
	}

	steps := e.EffectiveSteps()
	if index < 0 || index >= len(steps) {
		return StepView{}, fmt.Errorf("step %d out of range (0..%d)", index, len(steps)-1)
	}

	step := steps[index]
	return StepView{
		Index:      index,
		Count:      len(steps),
		StepID:     step.ID,
		Title:      step.Title,
		Type:       step.Type,
		Narration:  step.Narration.Resolve(lang),
		BoardNotes: step.BoardNotes,
		Directives: step.Directives(),
	}, nil
}

func (s *Server) handleAnnotate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AnnotateResult, error) {
	text, _ := args["text"].(string)
	raw, _ := args["directives"].(string)

	var directives []explanation.Directive
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &directives); err != nil {
			return AnnotateResult{}, fmt.Errorf("invalid directives: %w", err)
		}
	}

	return AnnotateResult{Segments: annotate.Segments(text, directives)}, nil
}

func (s *Server) handleLint(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LintResult, error) {
	e, err := decodePayloadArg(args)
	if err != nil {
		return LintResult{}, err
	}
	issues := explanation.Lint(e)
	return LintResult{Valid: len(issues) == 0, Issues: issues}, nil
}
