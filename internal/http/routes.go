package httpx

import (
	"log/slog"
	"net/http"
)

// RouterOptions groups dependencies for NewRouter.
type RouterOptions struct {
	Auth   *AuthHandlers
	Logger *slog.Logger
}

// NewRouter builds the HTTP routing table and wraps it with the standard
// middleware chain (outermost first: Recover, Logging).
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	mux.HandleFunc("POST /auth/login", opts.Auth.Login)
	mux.HandleFunc("POST /auth/select-role", opts.Auth.SelectRole)

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
