// Package listings provides the supply inventory bounded context module.
// Active listings form the candidate set for the matching engine.
package listings

import (
	apphttp "estatedesk/internal/http"
	"estatedesk/internal/listings/handler"
	"estatedesk/internal/listings/repository"
	"estatedesk/internal/listings/service"
	"estatedesk/platform/logger"
	"estatedesk/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the listings module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts listing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/listings"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/listings"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
