// Package matching provides the matching engine module: lead/listing scoring
// under two weight profiles, match persistence, and the HTTP and event
// surfaces that trigger regeneration.
package matching

import (
	"context"

	"estatedesk/internal/events"
	apphttp "estatedesk/internal/http"
	"estatedesk/internal/matching/handler"
	"estatedesk/internal/matching/repository"
	"estatedesk/internal/matching/service"
	"estatedesk/platform/logger"
	"estatedesk/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the matching bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule creates and initializes the matching module. The activity logger
// comes from the leads module so regeneration runs show up on lead timelines.
func NewModule(pool *pgxpool.Pool, activity service.ActivityLogger, cfg service.Config, val *validator.Validator, log *logger.Logger, activeStatuses []string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, activity, cfg, log, activeStatuses)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "matching"
}

// Service returns the service layer for external use (scheduler tasks).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts matching routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterLeadRoutes(ctx.Protected.Group("/leads"))
	m.handler.RegisterMatchRoutes(ctx.Protected.Group("/matches"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/matches"))
}

// RegisterEventHandlers subscribes the module to lead change events so a
// lead's matches are regenerated whenever its matching-relevant fields move.
func (m *Module) RegisterEventHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		changed, ok := event.(events.LeadChanged)
		if !ok {
			return nil
		}
		_, err := m.service.RegenerateForLead(ctx, changed.LeadID)
		return err
	}))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
