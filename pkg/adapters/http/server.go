package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine is the part of the vapor facade served over HTTP.
type Engine interface {
	Diagram(ctx context.Context, a, b string, pressure float64, points int) (*domain.PhaseDiagramResult, error)
	Species(ctx context.Context, name string) (*domain.Species, error)
	Pairs(ctx context.Context) ([]domain.BinaryPair, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Defaults are applied to diagram requests that omit a parameter.
type Defaults struct {
	Pressure float64
	Points   int
}

// Server serves the vapor API.
type Server struct {
	Engine   Engine
	Defaults Defaults

	spec    *openapi3.T
	logger  *slog.Logger
	metrics http.Handler
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithDefaults overrides the request defaults.
func WithDefaults(d Defaults) Option {
	return func(s *Server) {
		s.Defaults = d
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	s := &Server{
		Engine:   engine,
		Defaults: Defaults{Pressure: 1.013, Points: 21},
		spec:     spec,
		logger:   logging.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID, enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.With(s.validate("/diagram")).Get("/diagram", s.GetDiagram)
	r.With(s.validate("/species/{name}")).Get("/species/{name}", s.GetSpecies)
	r.Get("/pairs", s.ListPairs)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return r, nil
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>vapor API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// DiagramResponse is the JSON body of GET /diagram.
type DiagramResponse struct {
	*domain.PhaseDiagramResult
	LowConfidence bool              `json:"low_confidence"`
	Azeotrope     *domain.Azeotrope `json:"azeotrope,omitempty"`
}

// GetDiagram handles GET /diagram.
func (s *Server) GetDiagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pressure := s.Defaults.Pressure
	if v := q.Get("pressure"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid pressure: %w", err))
			return
		}
		pressure = p
	}
	points := s.Defaults.Points
	if v := q.Get("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid points: %w", err))
			return
		}
		points = n
	}

	res, err := s.Engine.Diagram(r.Context(), q.Get("a"), q.Get("b"), pressure, points)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	resp := DiagramResponse{PhaseDiagramResult: res, LowConfidence: res.LowConfidence()}
	if az, ok := res.Azeotrope(); ok {
		resp.Azeotrope = &az
	}
	s.writeJSON(w, resp)
}

// GetSpecies handles GET /species/{name}.
func (s *Server) GetSpecies(w http.ResponseWriter, r *http.Request) {
	sp, err := s.Engine.Species(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, sp)
}

// ListPairs handles GET /pairs.
func (s *Server) ListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.Engine.Pairs(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, pairs)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, map[string]string{
		"app":         "vapor-http",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles GET /events (SSE), forwarding library change notifications.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, fmt.Errorf("watch error: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", w.Header().Get(RequestIDHeader), "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
