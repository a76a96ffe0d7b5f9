package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/piar/gateway/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Execute *apiHandler.ExecuteHandler
	Health  *apiHandler.HealthHandler
	// Metrics is mounted on /metrics when set.
	Metrics fasthttp.RequestHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics)
	}

	r.POST("/login", handlers.Auth.Login)

	// Protected routes
	r.POST("/execute-sp", authMiddleware(handlers.Execute.Execute))

	return r
}
