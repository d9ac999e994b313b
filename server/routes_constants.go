package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteLogout   = "/auth/logout"

	// Protected UI
	RouteDashboard = "/dashboard"

	// Content API Routes
	RouteAPIEditSession = "/api/edit-session"
	RouteAPIContent     = "/api/content"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
