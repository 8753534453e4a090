package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerHomeRoutes(r)

	// Every API route requires an actor identity; the surrounding system
	// authenticates and forwards it.
	v1 := r.Group("/api/v1", middleware.ActorResolutionMiddleware())

	registerUserRoutes(v1, services.Organization)
	registerOrganizationRoutes(v1, services.Organization)

	// Ledger routes are nested under their organization: tenant scoping is
	// structural, not a query parameter.
	org := v1.Group("/organizations/:orgID")
	registerAccountRoutes(org, services.Chart, services.Balance)
	registerEntryRoutes(org, services.Posting)
	registerBalanceRoutes(org, services.Balance)
}
