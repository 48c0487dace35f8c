// Package api provides the HTTP and WebSocket server for remote input control.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fakeinput/internal/actions"
	"fakeinput/internal/input"
	"fakeinput/internal/protocol"
	"fakeinput/internal/ui"
)

// Executor runs validated actions. *actions.Runner implements it.
type Executor interface {
	Execute(ctx context.Context, acts []actions.Action) (int, error)
}

// Describer lists the key table of a backend. *input.Device implements it.
type Describer interface {
	Describe() []input.KeyInfo
}

// Server provides the HTTP API for remote control
type Server struct {
	exec    Executor
	keys    Describer
	backend string
	token   string
	wsMgr   *WSManager

	// runMu keeps sequences from different callers from interleaving
	runMu   sync.Mutex
	busy    atomic.Bool
	runs    atomic.Int64
	started time.Time

	baseCtx   context.Context
	closeOnce sync.Once
}

// NewServer creates a new API server and starts its WebSocket hub. An empty
// token disables authentication and refuses run actions.
func NewServer(exec Executor, keys Describer, backend, token string) *Server {
	s := &Server{
		exec:    exec,
		keys:    keys,
		backend: backend,
		token:   token,
		started: time.Now(),
		baseCtx: context.Background(),
	}
	s.wsMgr = newWSManager(s)
	go s.wsMgr.start()
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/actions", s.handleActions)
	mux.HandleFunc("/api/keys", s.handleKeys)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/", ui.Handler(s.backend))

	return s.authMiddleware(s.recoverMiddleware(mux))
}

// Start serves on addr until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("API: Failed to listen on %s: %v", addr, err)
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.baseCtx = ctx
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
		s.Close()
	}()

	log.Printf("API: Listening on %s", ln.Addr())
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("API: Server stopped: %v", err)
		return err
	}
	return nil
}

// Close stops the WebSocket hub
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.wsMgr.shutdown) })
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("API: Recovered from panic: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks the bearer token if one is configured. WebSocket
// clients may authenticate with an auth message instead, and the console page
// carries no data of its own. API calls from pages of other origins are
// refused even without a token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("API: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		if strings.HasPrefix(r.URL.Path, "/api/") {
			if !sameOrigin(r) {
				log.Printf("API: Rejected request from origin %q", r.Header.Get("Origin"))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			if r.Method == http.MethodPost && !isJSON(r) {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}

		if r.URL.Path == "/health" || r.URL.Path == "/ws" || r.URL.Path == "/" || s.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	return s.checkToken(bearerToken(r))
}

func (s *Server) checkToken(token string) bool {
	if s.token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

// sameOrigin reports whether the Origin header, if any, names this host.
// Only browsers send Origin.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// isJSON reports whether the request body is declared as JSON. Browsers
// cannot send that type cross-site without a preflight.
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) < len(prefix) || h[:len(prefix)] != prefix {
		return ""
	}
	return h[len(prefix):]
}

var (
	// errInvalidRequest marks errors in the request itself rather than in its execution
	errInvalidRequest = errors.New("invalid request")
	// errRunNeedsToken refuses shell commands on a server anyone can reach
	errRunNeedsToken = errors.New("run actions require a server token")
)

// Run executes a run request and broadcasts its result to WebSocket clients.
func (s *Server) Run(ctx context.Context, req protocol.RunPayload) protocol.ResultPayload {
	res, _ := s.run(ctx, req)
	s.wsMgr.Broadcast(protocol.TypeResult, res)
	return res
}

func (s *Server) run(ctx context.Context, req protocol.RunPayload) (protocol.ResultPayload, error) {
	res := protocol.ResultPayload{ID: req.ID}

	acts := append([]actions.Action(nil), req.Actions...)
	if req.Script != "" {
		parsed, err := actions.Parse(req.Script)
		if err != nil {
			res.Error = err.Error()
			return res, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		acts = append(acts, parsed...)
	}
	if err := actions.Validate(acts); err != nil {
		res.Error = err.Error()
		return res, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	if s.token == "" && hasCommand(acts) {
		res.Error = errRunNeedsToken.Error()
		return res, fmt.Errorf("%w: %w", errInvalidRequest, errRunNeedsToken)
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	steps, err := s.exec.Execute(ctx, acts)
	s.runs.Add(1)
	res.Steps = steps
	if err != nil {
		log.Printf("API: Run %q stopped after %d steps: %v", req.ID, steps, err)
		res.Error = err.Error()
		return res, err
	}
	res.OK = true
	return res, nil
}

func hasCommand(acts []actions.Action) bool {
	for _, a := range acts {
		if a.Op == actions.OpRun {
			return true
		}
	}
	return false
}

// handleActions handles POST /api/actions with a RunPayload body
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req protocol.RunPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("API: Run %q from %s", req.ID, r.RemoteAddr)

	res, err := s.run(r.Context(), req)
	s.wsMgr.Broadcast(protocol.TypeResult, res)

	status := http.StatusOK
	switch {
	case errors.Is(err, errInvalidRequest):
		status = http.StatusBadRequest
	case err != nil:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

// handleKeys handles GET /api/keys
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, protocol.KeysResponsePayload{
		Backend: s.backend,
		Keys:    s.keys.Describe(),
	})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"backend": s.backend,
		"busy":    s.busy.Load(),
		"runs":    s.runs.Load(),
		"clients": s.wsMgr.ClientCount(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
