package server

import (
	"net/http"

	"github.com/jrsteele09/go-dash-server/identity"
)

// IndexHandler renders the public landing page
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// DashboardHandler renders the protected dashboard. It runs behind
// RequireSessionAuth, so the user profile is always present in context.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(ContextKeyUser).(*identity.UserProfile)
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusFound)
			return
		}

		data := map[string]interface{}{
			"AppName":  s.config.GetAppName(),
			"Username": user.DisplayName(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}
