// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"brewscout/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HookHandler *handler.HookHandler
	ShopHandler *handler.ShopHandler
	CityHandler *handler.CityHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	hookHandler *handler.HookHandler
	shopHandler *handler.ShopHandler
	cityHandler *handler.CityHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		hookHandler: params.HookHandler,
		shopHandler: params.ShopHandler,
		cityHandler: params.CityHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api/v1")
	{
		apiGroup.POST("/hooks/telegram", r.hookHandler.ReceiveTelegramUpdate)
		apiGroup.GET("/shops", r.shopHandler.ListShops)
		apiGroup.GET("/cities", r.cityHandler.ListCities)
	}
}
