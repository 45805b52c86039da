package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lucidshield/sentinel/internal/config"
	"github.com/lucidshield/sentinel/pkg/sentinel"
)

const version = "0.1.0"

// maxRequestBody is the maximum allowed request body size (1 MB).
const maxRequestBody int64 = 1 << 20

type extractRequest struct {
	Text        string   `json:"text"`
	CustomNames []string `json:"custom_names"`
}

type extractResponse struct {
	Detections     []sentinel.Detection `json:"detections"`
	ProcessingTime int64                `json:"processing_time_ms"`
	Truncated      bool                 `json:"truncated,omitempty"`
}

type maskRequest struct {
	Text       string               `json:"text"`
	Detections []sentinel.Detection `json:"detections"`
}

type restoreRequest struct {
	Text     string             `json:"text"`
	Mappings []sentinel.Mapping `json:"mappings"`
}

type restoreResponse struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// newMux creates the HTTP mux with all routes registered. base is the
// shared recognizer used on the hot path; requests that supply
// custom_names get a fresh per-request Recognizer instead, since custom
// names mutate registry state that must not leak across requests. That
// per-request Recognizer carries only the request's custom names: it does
// not inherit base's allowlist, minimum confidence, or custom patterns.
func newMux(base *sentinel.Recognizer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/extract", handleExtract(base))
	mux.HandleFunc("/api/mask", handleMask())
	mux.HandleFunc("/api/restore", handleRestore())
	mux.HandleFunc("/", handleUI)

	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version})
}

func handleExtract(base *sentinel.Recognizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text field is required")
			return
		}

		rec := base
		if len(req.CustomNames) > 0 {
			rec = sentinel.NewRecognizer()
			rec.SetCustomNames(req.CustomNames)
		}

		start := time.Now()
		detections := rec.Extract(req.Text)
		elapsed := time.Since(start).Milliseconds()

		writeJSON(w, http.StatusOK, extractResponse{Detections: detections, ProcessingTime: elapsed, Truncated: rec.Truncated()})
	}
}

func handleMask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		var req maskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text field is required")
			return
		}

		result := sentinel.ApplyMasking(req.Text, req.Detections)
		writeJSON(w, http.StatusOK, result)
	}
}

func handleRestore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		var req restoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text field is required")
			return
		}

		restored := sentinel.Restore(req.Text, req.Mappings)
		writeJSON(w, http.StatusOK, restoreResponse{Text: restored})
	}
}

func main() {
	portFlag := flag.Int("port", 0, "server port (default 9090, overrides SENTINEL_SERVER_PORT)")
	configFlag := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	port := 9090
	if envPort := os.Getenv("SENTINEL_SERVER_PORT"); envPort != "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			port = p
		}
	}
	if *portFlag != 0 {
		port = *portFlag
	}

	cfg := config.DefaultConfig()
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	base, err := sentinel.FromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to build recognizer: %v", err)
	}

	mux := newMux(base)
	handler := corsMiddleware(mux)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("sentinel-server %s starting on port %d", version, port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
