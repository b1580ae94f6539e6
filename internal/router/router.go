// Package router holds the static table of route-to-handler bindings.
// All bindings are declared here at startup; there is no dynamic
// discovery of endpoint modules.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventengine/eventengine/internal/handler"
)

// Register wires every endpoint. Queries and mutations alike are
// POSTs with a JSON body: identifying data and the token travel in
// the body, never in the path. The rate limiter guards the two
// credential endpoints.
func Register(e *echo.Echo, nodes *handler.NodeHandler, users *handler.UserHandler, loginLimiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	n := e.Group("/node")
	n.POST("/", nodes.List)
	n.POST("/details", nodes.Detail)
	n.POST("/add", nodes.Add)
	n.POST("/update", nodes.Update)
	n.POST("/delete", nodes.Delete)
	n.POST("/history", nodes.History)
	n.POST("/export", nodes.Export)
	n.POST("/import", nodes.Import)

	u := e.Group("/user")
	u.POST("/login", users.Login, loginLimiter)
	u.POST("/register", users.Register, loginLimiter)
	u.POST("/attend", users.Attend)
}
