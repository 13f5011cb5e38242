package http

import (
	"context"

	"estatedesk/platform/config"
	"estatedesk/platform/events"
	"estatedesk/platform/logger"
)

// RouterConfig is the slice of configuration the router needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs the readiness endpoint, normally a DB pool ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App carries everything the router needs, assembled in cmd/api.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
