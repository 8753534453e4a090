package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	chartService   portssvc.ChartOfAccountsSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

func newAccountHandler(cs portssvc.ChartOfAccountsSvcFacade, bs portssvc.BalanceSvcFacade) *accountHandler {
	return &accountHandler{chartService: cs, balanceService: bs}
}

func registerAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartOfAccountsSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := newAccountHandler(chartService, balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), c.Param("orgID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.chartService.ListAccounts(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.chartService.GetAccountByID(c.Request.Context(), c.Param("orgID"), c.Param("accountID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	account, err := h.chartService.UpdateAccount(c.Request.Context(), c.Param("orgID"), c.Param("accountID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	result, err := h.chartService.DeactivateAccount(c.Request.Context(), c.Param("orgID"), c.Param("accountID"), actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balances, err := h.balanceService.AccountBalance(c.Request.Context(), c.Param("orgID"), c.Param("accountID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": dto.ToBalanceResponses(balances)})
}
