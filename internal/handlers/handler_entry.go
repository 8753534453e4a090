package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries and their lifecycle.
type entryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(ps portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{postingService: ps}
}

func registerEntryRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(postingService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createDraftEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateDraftEntry)
		entries.POST("/:entryID/lines", h.addLine)
		entries.PUT("/:entryID/lines/:lineID", h.updateLine)
		entries.DELETE("/:entryID/lines/:lineID", h.removeLine)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}

func (h *entryHandler) createDraftEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.CreateDraftEntry(c.Request.Context(), c.Param("orgID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListEntriesParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	params.IncludeVoided = c.Query("includeVoided") == "true"

	resp, err := h.postingService.ListEntries(c.Request.Context(), c.Param("orgID"), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entry, err := h.postingService.GetEntryByID(c.Request.Context(), c.Param("orgID"), c.Param("entryID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) updateDraftEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.UpdateDraftEntry(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.AddLine(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.UpdateLine(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), c.Param("lineID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.RemoveLine(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), c.Param("lineID"), actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostEntry(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VoidEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.VoidEntry(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Entry voided", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
