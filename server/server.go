package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-dash-server/content"
	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/jrsteele09/go-dash-server/identity"
	"github.com/jrsteele09/go-dash-server/internal/config"
	"github.com/jrsteele09/go-dash-server/sessions"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	provider *identity.Provider
	sessions sessions.Repo
	editGate *editgate.Service
	sync     *content.SyncClient
}

func New(config config.Config, provider *identity.Provider, sessionRepo sessions.Repo, editGate *editgate.Service, syncClient *content.SyncClient) (*Server, error) {
	if provider == nil {
		return nil, fmt.Errorf("[Server New] identity provider is required")
	}
	if sessionRepo == nil {
		return nil, fmt.Errorf("[Server New] session repo is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		provider: provider,
		sessions: sessionRepo,
		editGate: editGate,
		sync:     syncClient,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
