// Package server runs the short-lived local HTTP server that receives the
// streaming provider's OAuth redirect. The handler only captures the
// authorization code; the code-for-token exchange goes through the playlist
// backend's proxy endpoint.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CallbackResult carries the captured authorization code, or the reason the
// authorization flow failed.
type CallbackResult struct {
	Code string
	err  error
}

func (r CallbackResult) Error() error {
	return r.err
}

// CallbackHandler handles the OAuth2 redirect for the authorization code
// flow. The redirect is accepted exactly once; later hits are rejected.
type CallbackHandler struct {
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	mu          sync.Mutex
	callbackHit bool
}

// NewCallbackHandler creates a callback handler expecting the given state
// token. The state token should be cryptographically random.
func NewCallbackHandler(state string) *CallbackHandler {
	return &CallbackHandler{
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// ServeHTTP validates the state parameter and sends the authorization code
// through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != h.state {
		h.send(CallbackResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		h.send(CallbackResult{err: fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.send(CallbackResult{Code: code})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// send delivers the result through the channel (only once).
func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives exactly one callback result.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

// Serve runs the callback server on addr until the handler receives its one
// redirect or ctx is done, shuts the server down, and returns the captured
// result.
func Serve(ctx context.Context, addr string, handler *CallbackHandler) (CallbackResult, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/callback", handler.ServeHTTP)

	srv := &http.Server{Addr: addr, Handler: r}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-errChan:
		return CallbackResult{}, fmt.Errorf("callback server failed: %w", err)
	case result := <-handler.Result():
		return result, nil
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	}
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
