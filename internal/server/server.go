// Package server exposes the calculation engine as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/internal/metrics"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Options configures a Handler. Only Engine is required.
type Options struct {
	Engine       *engine.Engine
	Source       *config.Source // used by reloads; nil disables them
	Logger       *zap.Logger
	Metrics      *metrics.Recorder
	Tracer       trace.Tracer
	MaxBodyBytes int64
	Version      string
}

// Handler serves the API. The engine is swapped atomically on reload, so a
// request always finishes on the engine it started with.
type Handler struct {
	engine       atomic.Pointer[engine.Engine]
	source       *config.Source
	logger       *zap.Logger
	metrics      *metrics.Recorder
	tracer       trace.Tracer
	maxBodyBytes int64
	version      string
	router       *mux.Router
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer(constants.DefaultServiceName)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &Handler{
		source:       opts.Source,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		tracer:       opts.Tracer,
		maxBodyBytes: opts.MaxBodyBytes,
		version:      trimmedVersion,
	}
	h.engine.Store(opts.Engine)
	h.router = h.routes()
	return h
}

func (h *Handler) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.instrument)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/emi", h.handleEMI).Methods(http.MethodPost)
	api.HandleFunc("/loan", h.handleLoan).Methods(http.MethodPost)
	api.HandleFunc("/rd", h.handleRecurringDeposit).Methods(http.MethodPost)
	api.HandleFunc("/fd", h.handleFixedDeposit).Methods(http.MethodPost)
	api.HandleFunc("/schedule", h.handleSchedule).Methods(http.MethodPost)
	api.HandleFunc("/schemes/{scheme}", h.handleScheme).Methods(http.MethodPost)
	api.HandleFunc("/ppf/target", h.handlePPFTarget).Methods(http.MethodPost)
	api.HandleFunc("/ppf/extension", h.handlePPFExtension).Methods(http.MethodPost)
	api.HandleFunc("/ppf/loan", h.handlePPFLoan).Methods(http.MethodPost)
	api.HandleFunc("/ppf/withdrawal", h.handlePPFWithdrawal).Methods(http.MethodPost)
	api.HandleFunc("/tax/benefits", h.handleTaxBenefits).Methods(http.MethodPost)
	api.HandleFunc("/tax/implications", h.handleTaxImplications).Methods(http.MethodPost)
	api.HandleFunc("/compare/schemes", h.handleCompareSchemes).Methods(http.MethodPost)
	api.HandleFunc("/compare/investments", h.handleCompareInvestments).Methods(http.MethodPost)
	api.HandleFunc("/compare/loans", h.handleCompareLoans).Methods(http.MethodPost)
	api.HandleFunc("/compare/alternatives", h.handleCompareAlternatives).Methods(http.MethodPost)
	api.HandleFunc("/gst/add", h.handleGSTAdd).Methods(http.MethodPost)
	api.HandleFunc("/gst/remove", h.handleGSTRemove).Methods(http.MethodPost)
	api.HandleFunc("/currency/convert", h.handleConvert).Methods(http.MethodPost)
	api.HandleFunc("/eligibility", h.handleEligibility).Methods(http.MethodPost)
	api.HandleFunc("/rates", h.handleRates).Methods(http.MethodGet)
	api.HandleFunc("/rates/reload", h.handleReload).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Engine returns the engine currently serving requests.
func (h *Handler) Engine() *engine.Engine {
	return h.engine.Load()
}

// Swap replaces the serving engine.
func (h *Handler) Swap(e *engine.Engine) {
	h.engine.Store(e)
}

type requestIDKey struct{}

// requestID tags every request with an id, reusing the caller's if present.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// instrument wraps each request in a span and records its latency.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		ctx, span := h.tracer.Start(r.Context(), route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("request.id", requestIDFrom(r.Context())),
			),
		)
		defer span.End()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		h.metrics.ObserveRequest(route, r.Method, strconv.Itoa(rec.status), time.Since(start))
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps a calculation error kind to an HTTP status.
func statusFor(kind calcerr.Kind) int {
	switch kind {
	case calcerr.InvalidInput:
		return http.StatusBadRequest
	case calcerr.OutOfBounds, calcerr.LimitExceeded, calcerr.UnsupportedPair, calcerr.IneligibleScheme:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondCalcError writes err with the status of its kind and records it.
func (h *Handler) respondCalcError(w http.ResponseWriter, r *http.Request, op string, err error) {
	kind := calcerr.KindOf(err)
	h.metrics.Observe(op, kind.String())
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("error.kind", kind.String()))
	h.respondErrorWithOp(w, r, statusFor(kind), errorResponse{Error: err.Error(), Kind: kind.String()}, op)
}

func (h *Handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, resp errorResponse, op string) {
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Int("status", status),
			zap.String("error", resp.Error),
		)
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// decode reads a JSON body of at most maxBodyBytes into dst. Unknown fields
// are rejected.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodyBytes),
				Kind:  calcerr.InvalidInput.String(),
			}, op)
			return false
		}
		h.metrics.Observe(op, calcerr.InvalidInput.String())
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("failed to decode request: %v", err),
			Kind:  calcerr.InvalidInput.String(),
		}, op)
		return false
	}
	return true
}

// respond writes a calculation outcome: the value on success, the mapped
// error otherwise.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, value interface{}, err error) {
	if err != nil {
		h.respondCalcError(w, r, op, err)
		return
	}
	h.metrics.Observe(op, "")
	h.writeJSON(w, http.StatusOK, value)
}

// Run serves h on cfg.Address until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *Config, h http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("HTTP server stopped", zap.String("op", "server.Run"))
	return nil
}
