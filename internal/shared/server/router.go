package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/corrections"
	"tramites-backend/internal/files"
	"tramites-backend/internal/metadata"
	"tramites-backend/internal/observations"
	"tramites-backend/internal/shared/config"
	"tramites-backend/internal/shared/metrics"
	"tramites-backend/internal/shared/server/middleware"
	"tramites-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config              config.Config
	ObservationsHandler *observations.Handler
	CorrectionsHandler  *corrections.Handler
	MetadataHandler     *metadata.Handler
	FilesHandler        *files.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.Throttle(middleware.ThrottleConfig{
			Rules: map[string]middleware.ThrottleRule{
				"DEFAULT":    {Rate: 25, Burst: 50},
				"SUBMISSION": {Rate: 2, Burst: 20},
			},
			GroupFor: submissionGroup,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	deps.ObservationsHandler.RegisterRoutes(api)
	deps.CorrectionsHandler.RegisterRoutes(api)
	deps.MetadataHandler.RegisterRoutes(api)
	deps.FilesHandler.RegisterRoutes(api)

	return r
}

// submissionGroup throttles multipart submission posts tighter than reads.
func submissionGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasPrefix(c.FullPath(), "/api/v1/corrections") {
		return "SUBMISSION"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
