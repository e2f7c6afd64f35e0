package adapthttp

import (
	"net/http"

	"accounts/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	users      *app.UserService
	tokens     *app.TokenService
	oidcConfig OIDCConfig
}

// OIDCConfig holds the optional SSO configuration. When Enabled is false
// the SSO routes answer 404.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// New creates a Server wired to the given application services.
func New(users *app.UserService, tokens *app.TokenService, oidcConfig OIDCConfig) *Server {
	return &Server{users: users, tokens: tokens, oidcConfig: oidcConfig}
}

// Handler returns the root http.Handler for the application. Register and
// login bypass the access guard; everything under /users sits behind it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("/config", s.handleConfig)

	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/sso/login", s.handleSSOLogin)
	mux.HandleFunc("/sso/callback", s.handleSSOCallback)

	mux.Handle("/users", s.authMiddleware(http.HandlerFunc(s.handleUsers)))
	mux.Handle("/users/", s.authMiddleware(http.HandlerFunc(s.handleUserByID)))

	return s.loggingMiddleware(mux)
}
