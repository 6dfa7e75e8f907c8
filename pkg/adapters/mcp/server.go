package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Engine is the part of the vapor facade exposed as MCP tools.
type Engine interface {
	Diagram(ctx context.Context, a, b string, pressure float64, points int) (*domain.PhaseDiagramResult, error)
	Species(ctx context.Context, name string) (*domain.Species, error)
	Pairs(ctx context.Context) ([]domain.BinaryPair, error)
}

// DiagramResponse is the structured result of the phase_diagram tool.
type DiagramResponse struct {
	Species1          string                    `json:"species1" jsonschema_description:"Canonical id of component 1"`
	Species2          string                    `json:"species2" jsonschema_description:"Canonical id of component 2"`
	Pressure          float64                   `json:"pressure" jsonschema_description:"System pressure in bar"`
	Points            []domain.EquilibriumPoint `json:"points" jsonschema_description:"T-x-y table ordered by x1"`
	Azeotrope         *domain.Azeotrope         `json:"azeotrope,omitempty" jsonschema_description:"Interpolated azeotrope, if any"`
	Estimated         bool                      `json:"estimated" jsonschema_description:"Some pure-component data was estimated"`
	DefaultParameters bool                      `json:"default_parameters" jsonschema_description:"No interaction parameters were known; ideal solution assumed"`
	Unconverged       int                       `json:"unconverged" jsonschema_description:"Points that hit the iteration bound"`
}

// diagramArgs are the phase_diagram arguments. Clients send numbers as strings often
// enough that decoding is weakly typed.
type diagramArgs struct {
	A        string  `mapstructure:"a"`
	B        string  `mapstructure:"b"`
	Pressure float64 `mapstructure:"pressure"`
	Points   int     `mapstructure:"points"`
}

// Server wraps the vapor engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	defaults  diagramArgs
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaults sets the pressure (bar) and point count used when a call omits them.
func WithDefaults(pressure float64, points int) Option {
	return func(s *Server) {
		s.defaults.Pressure = pressure
		s.defaults.Points = points
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("vapor-mcp", version),
		defaults:  diagramArgs{Pressure: 1.013, Points: 21},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: phase_diagram
	diagramTool := mcp.NewTool("phase_diagram",
		mcp.WithDescription("Compute the isobaric T-x-y diagram of a binary mixture (NRTL activity model)."),
		mcp.WithString("a", mcp.Required(), mcp.Description("Component 1: name, alias, formula or SMILES")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Component 2: name, alias, formula or SMILES")),
		mcp.WithNumber("pressure", mcp.Description("System pressure in bar (default 1.013)")),
		mcp.WithNumber("points", mcp.Description("Number of liquid compositions, endpoints included (default 21)")),
		mcp.WithOutputSchema[DiagramResponse](),
	)
	s.mcpServer.AddTool(diagramTool, mcp.NewStructuredToolHandler(s.handlePhaseDiagram))

	// TOOL: resolve_species
	speciesTool := mcp.NewTool("resolve_species",
		mcp.WithDescription("Resolve a substance and report its pure-component properties and their provenance."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name, alias, formula or SMILES")),
		mcp.WithOutputSchema[domain.Species](),
	)
	s.mcpServer.AddTool(speciesTool, mcp.NewStructuredToolHandler(s.handleResolveSpecies))
}

func (s *Server) handlePhaseDiagram(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DiagramResponse, error) {
	in := s.defaults
	if err := decodeArgs(args, &in); err != nil {
		return DiagramResponse{}, err
	}

	res, err := s.engine.Diagram(ctx, in.A, in.B, in.Pressure, in.Points)
	if err != nil {
		s.logger.Warn("MCP phase_diagram failed", "a", in.A, "b", in.B, "error", err)
		return DiagramResponse{}, fmt.Errorf("phase diagram failed: %w", err)
	}

	resp := DiagramResponse{
		Species1:          res.Species1.ID,
		Species2:          res.Species2.ID,
		Pressure:          res.Pressure,
		Points:            res.Points,
		Estimated:         res.Estimated,
		DefaultParameters: res.DefaultParameters,
		Unconverged:       res.Unconverged,
	}
	if az, ok := res.Azeotrope(); ok {
		resp.Azeotrope = &az
	}
	return resp, nil
}

func (s *Server) handleResolveSpecies(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Species, error) {
	var in struct {
		Name string `mapstructure:"name"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return domain.Species{}, err
	}

	sp, err := s.engine.Species(ctx, in.Name)
	if err != nil {
		return domain.Species{}, fmt.Errorf("resolve failed: %w", err)
	}
	return *sp, nil
}

func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) registerResources() {
	// EXPOSE: vapor://pairs
	s.mcpServer.AddResource(mcp.NewResource("vapor://pairs", "Known binary interaction parameters",
		mcp.WithMIMEType("application/json"),
	), s.handlePairs)
}

func (s *Server) handlePairs(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	pairs, err := s.engine.Pairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	jsonBytes, err := json.Marshal(pairs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pairs: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "vapor://pairs",
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
