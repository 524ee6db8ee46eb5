package server

import (
	"sleuth/internal/server/middleware"
	"sleuth/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Investigation routes
	apiRoutes.GET("/investigations", routes.GetInvestigationsHandler)
	apiRoutes.GET("/investigations/:id", routes.GetInvestigationHandler)
	apiRoutes.POST("/investigations", routes.CreateInvestigationHandler, middleware.RequirePermission("investigation.create"))
	apiRoutes.DELETE("/investigations/:id", routes.DeleteInvestigationHandler, middleware.RequirePermission("investigation.delete"))

	// Article routes
	apiRoutes.GET("/investigations/:id/articles", routes.GetArticlesHandler, middleware.RequirePermission("investigation.list:article"))
	apiRoutes.POST("/investigations/:id/articles", routes.AddArticlesHandler, middleware.RequirePermission("investigation.add:article"))

	// Graph and path routes
	apiRoutes.GET("/investigations/:id/graph", routes.GetGraphHandler)
	apiRoutes.GET("/investigations/:id/paths", routes.GetPathsHandler)
	apiRoutes.POST("/investigations/:id/synthesize", routes.SynthesizeHandler, middleware.RequirePermission("investigation.synthesize"))
	apiRoutes.POST("/investigations/:id/nodes/search", routes.SearchNodesHandler)
}
