package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rpg-gamemaster/internal/service"
)

// CatalogHandler serves event types and players.
type CatalogHandler struct {
	eventTypes *service.EventTypeService
	players    *service.PlayerService
}

func NewCatalogHandler(eventTypes *service.EventTypeService, players *service.PlayerService) *CatalogHandler {
	return &CatalogHandler{eventTypes: eventTypes, players: players}
}

func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/event-types", h.ListEventTypes)
	rg.POST("/event-types", h.CreateEventType)
	rg.PUT("/event-types/:id", h.UpdateEventType)
	rg.DELETE("/event-types/:id", h.DeleteEventType)

	rg.POST("/players", h.CreatePlayer)
	rg.PUT("/players/:id", h.UpdatePlayer)
	rg.DELETE("/players/:id", h.DeletePlayer)
}

func (h *CatalogHandler) ListEventTypes(c *gin.Context) {
	types, err := h.eventTypes.ListEventTypes(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, types)
}

func (h *CatalogHandler) CreateEventType(c *gin.Context) {
	var in service.EventTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	et, err := h.eventTypes.CreateEventType(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, et)
}

func (h *CatalogHandler) UpdateEventType(c *gin.Context) {
	var in service.EventTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	et, err := h.eventTypes.UpdateEventType(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, et)
}

func (h *CatalogHandler) DeleteEventType(c *gin.Context) {
	if err := h.eventTypes.DeleteEventType(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreatePlayer(c *gin.Context) {
	var in service.PlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.players.CreatePlayer(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdatePlayer(c *gin.Context) {
	var in service.PlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.players.UpdatePlayer(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, p)
}

func (h *CatalogHandler) DeletePlayer(c *gin.Context) {
	if err := h.players.DeletePlayer(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
