package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dark0-7s/scams-20b.io/internal/handler"
	"github.com/dark0-7s/scams-20b.io/pkg/constants"
)

// New builds the HTTP router.
func New(
	sessionHandler *handler.SessionHandler,
	attendanceHandler *handler.AttendanceHandler,
	stream *handler.StreamHandler,
	streamWS *handler.StreamWSHandler,
	health *handler.HealthHandler,
) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(constants.PathHealth, health.Health)
	r.GET(constants.PathReady, health.Ready)

	api := r.Group(constants.PathAPI)
	{
		sessions := api.Group(constants.PathSessions)
		{
			sessions.GET("", sessionHandler.ListSessions)
			sessions.POST("", sessionHandler.StartSession)
			sessions.POST("/:id/stop", sessionHandler.StopSession)
			sessions.GET("/:id/stream", stream.Stream)
			sessions.GET("/:id/ws", streamWS.ServeWS)
		}
		api.POST(constants.PathAttendance, attendanceHandler.Ingest)
	}

	return r
}
