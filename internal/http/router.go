package http

import (
	"github.com/gatherly/eventsapi/internal/config"
	"github.com/gatherly/eventsapi/internal/http/handlers"
	"github.com/gatherly/eventsapi/internal/http/middlewares"
	"github.com/gatherly/eventsapi/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	Config config.Config
	Auth   *middlewares.AuthMiddleware
	Events *handlers.EventsHandler
	Users  *handlers.UsersHandler
	Login  *handlers.AuthHandler
	Prom   *observability.Prom
	Reg    *prometheus.Registry
	DB     handlers.Pinger
}

func NewRouter(deps Deps) *gin.Engine {
	if deps.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.CORSMiddleware(deps.Config.AllowedOrigins))
	router.Use(middlewares.RequireJSON())
	router.Use(middlewares.MaxBodyBytes(deps.Config.MaxBodyBytes))
	router.Use(otelgin.Middleware("eventsapi"))

	if deps.Prom != nil {
		router.Use(deps.Prom.GinHandleMiddleware())
	}

	// credential endpoints optionally sit behind the limiter
	var limited []gin.HandlerFunc

	if deps.Config.RateLimitEnabled {
		limiter := middlewares.NewRateLimiter(deps.Config.RateLimitMax, deps.Config.RateLimitWindow)
		limited = append(limited, limiter.Middleware(middlewares.KeyByIP))
	}

	// operational surface

	router.GET("/healthz", handlers.Healthz)
	router.GET("/readyz", handlers.Readyz(deps.DB))

	if deps.Reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Reg, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")

	// auth

	api.POST("/auth", append(limited, deps.Login.Login)...)

	// users

	users := api.Group("/users")
	users.POST("", append(limited, deps.Users.Register)...)
	users.GET("/me", deps.Auth.RequireAuth(), deps.Users.Me)
	users.PUT("/:id", deps.Auth.RequireAuth(), deps.Auth.RequireSelfOrAdmin(), deps.Users.UpdateUser)
	users.DELETE("/:id", deps.Auth.RequireAuth(), deps.Auth.RequireSelfOrAdmin(), deps.Users.DeleteUser)

	// events

	events := api.Group("/events")
	events.GET("", deps.Events.ListEvents)
	events.GET("/:id", deps.Events.GetEventByID)
	events.POST("", deps.Auth.RequireAuth(), deps.Auth.RequireHost(), deps.Events.CreateEvent)
	events.PUT("/:id", deps.Auth.RequireAuth(), deps.Auth.RequireHost(), deps.Events.UpdateEvent)
	events.DELETE("/:id", deps.Auth.RequireAuth(), deps.Auth.RequireHost(), deps.Events.DeleteEvent)
	events.POST("/:id/join", deps.Auth.RequireAuth(), deps.Events.JoinEvent)

	return router
}
