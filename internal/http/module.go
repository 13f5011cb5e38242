// Package http assembles the gin router from self-registering domain modules.
package http

import (
	"estatedesk/platform/config"
	"estatedesk/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a domain area that mounts its own routes. The router stays
// ignorant of individual endpoints; each module registers against the groups
// in RouterContext.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups and shared middleware handed to each
// module during registration.
type RouterContext struct {
	Engine *gin.Engine
	// V1 is /api/v1, unauthenticated.
	V1 *gin.RouterGroup
	// Protected is /api/v1 behind JWT auth.
	Protected *gin.RouterGroup
	// Admin is /api/v1/admin, auth plus the admin role.
	Admin *gin.RouterGroup

	Config         config.JWTConfig
	AuthMiddleware gin.HandlerFunc
	RateLimiter    *httpkit.IPRateLimiter
}
