package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing

	"github.com/swords14/erclat-floorplan/internal/handler"
	"github.com/swords14/erclat-floorplan/internal/middleware"
)

// RegisterRoutes registers routes that need neither authentication nor
// caching.  Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated read endpoints: the
// layout listing and documents for the listing screen, the rendered PNG
// export, and the asset catalog feeding the object library.  The cache
// middleware is applied here because these responses are immutable
// between saves.
func RegisterPublic(e *echo.Echo, h *handler.LayoutHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	// Listing screen: id, name, updated_at per layout.
	g.GET("/layouts", h.ListLayouts)
	// Full stored document {name, layout_json} for hydrating the editor.
	g.GET("/layouts/:id", h.GetLayout)
	// PNG export at print density; filename derived from the layout name.
	g.GET("/layouts/:id/render", h.RenderLayout)
	// Static asset registry for the drag source.
	g.GET("/catalog", h.GetCatalog)
}

// RegisterOwner registers the write endpoints behind the JWT boundary.
// Tokens come from the external auth service; this service only verifies
// them and gates writes to planner and owner roles.
func RegisterOwner(e *echo.Echo, h *handler.LayoutHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OWNER", "PLANNER"))
	// Save is always user-triggered: create for a new scene, update for
	// an existing one.
	g.POST("/layouts", h.CreateLayout)
	g.PUT("/layouts/:id", h.UpdateLayout)
	g.DELETE("/layouts/:id", h.DeleteLayout)
}
