package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

// balanceHandler exposes the derived balance read path.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}

	rg.GET("/balances", h.listBalances)
}

func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var asOf *time.Time
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		t, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			// Accept a bare date too.
			t, err = time.Parse("2006-01-02", asOfStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asOf parameter, expected RFC3339 or YYYY-MM-DD"})
				return
			}
		}
		asOf = &t
	}

	balances, err := h.balanceService.Balances(c.Request.Context(), c.Param("orgID"), asOf)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": dto.ToBalanceResponses(balances)})
}
