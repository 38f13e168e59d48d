// Package server exposes the layout engine over HTTP.
//
// # Endpoints
//
//	POST /v1/layout   body: diagram document, response: laid-out document
//	GET  /healthz     liveness probe
//
// Query parameters on /v1/layout override the configured layout values:
// horizontal_gap, vertical_gap, passes, non_hierarchy_gap, margin and
// max_width.
//
// # Status Codes
//
//   - 200: the laid-out document; X-Cache tells whether it came from cache
//   - 400: malformed document, unknown link endpoints or invalid parameters
//   - 422: cyclic inheritance; the body lists the shapes on the cycle
//   - 500: anything else
package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/umlayout/pkg/buildinfo"
	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/layout"
	"github.com/matzehuels/umlayout/pkg/observability"
)

const (
	// MaxBodyBytes caps request documents.
	MaxBodyBytes = 8 << 20

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server. Zero values are usable.
type Options struct {
	Logger   *log.Logger
	Layout   layout.Config // defaults before query overrides
	Cache    cache.Cache   // nil disables caching
	Keyer    cache.Keyer
	CacheTTL time.Duration
}

// Server serves layout requests. It is safe for concurrent use.
type Server struct {
	engine   *layout.Engine
	logger   *log.Logger
	defaults layout.Config
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	return &Server{
		engine:   layout.New(layout.WithLogger(opts.Logger)),
		logger:   opts.Logger,
		defaults: opts.Layout,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		ttl:      opts.CacheTTL,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr, "version", buildinfo.Version)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// observe logs every request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	cfg, err := s.config(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	key := s.keyer.LayoutKey(cache.Hash(body), cfg)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		w.Header().Set("X-Cache", "hit")
		writeRaw(w, http.StatusOK, data)
		return
	}

	d, err := diagram.ReadJSON(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := s.engine.Run(ctx, d.Shapes(), d.Links(), cfg)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := diagram.WriteJSON(d, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.cache.Set(ctx, key, buf.Bytes(), s.ttl); err != nil {
		s.logger.Warn("cache write failed", "err", err)
	}

	h := w.Header()
	h.Set("X-Cache", "miss")
	h.Set("X-Layout-Levels", strconv.Itoa(stats.Levels))
	h.Set("X-Layout-Crossings", strconv.Itoa(stats.Crossings))
	writeRaw(w, http.StatusOK, buf.Bytes())
}

// config applies query overrides to the server defaults.
func (s *Server) config(r *http.Request) (layout.Config, error) {
	cfg := s.defaults
	q := r.URL.Query()
	floats := []struct {
		name string
		dst  *float64
	}{
		{"horizontal_gap", &cfg.HorizontalGap},
		{"vertical_gap", &cfg.VerticalGap},
		{"non_hierarchy_gap", &cfg.NonHierarchyGap},
		{"margin", &cfg.Margin},
		{"max_width", &cfg.MaxWidth},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a number", f.name, v)
		}
		*f.dst = parsed
	}
	if v := q.Get("passes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "passes: %q is not an integer", v)
		}
		cfg.MaxCrossingReductionPasses = n
	}
	return cfg, cfg.Validate()
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeCyclicHierarchy:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string   `json:"error"`
	Code  string   `json:"code,omitempty"`
	Nodes []string `json:"nodes,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))}
	var cyc *errors.CyclicHierarchyError
	if errors.As(err, &cyc) {
		resp.Error = cyc.Error()
		resp.Nodes = cyc.Nodes
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
