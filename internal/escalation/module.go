// Package escalation provides the escalation scheduler module: automated
// follow-up cadence and termination for leads that stop responding.
package escalation

import (
	"estatedesk/internal/escalation/handler"
	"estatedesk/internal/escalation/service"
	"estatedesk/internal/events"
	apphttp "estatedesk/internal/http"
	"estatedesk/platform/logger"
)

// Module is the escalation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the escalation module. Both the lead
// repository and the activity logger come from the leads module.
func NewModule(leads service.LeadRepository, activity service.ActivityLogger, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(leads, activity, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "escalation"
}

// Service returns the service layer for external use (scheduler tasks).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts escalation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterLeadRoutes(ctx.Protected.Group("/leads"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/escalations"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
