package constants

// Route paths shared between the router and tests.
const (
	PathHealth     = "/health"
	PathReady      = "/ready"
	PathAPI        = "/api"
	PathSessions   = "/sessions"
	PathAttendance = "/attendance"
)
