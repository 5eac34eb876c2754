package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/service"
)

// RoomHandler serves room administration and the per-room listings.
type RoomHandler struct {
	rooms   *service.RoomService
	history *service.HistoryService
	players *service.PlayerService
}

func NewRoomHandler(rooms *service.RoomService, history *service.HistoryService, players *service.PlayerService) *RoomHandler {
	return &RoomHandler{rooms: rooms, history: history, players: players}
}

// Register mounts the room routes on rg.
func (h *RoomHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.POST("/rooms", h.CreateRoom)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.DELETE("/rooms/:id", h.DeleteRoom)
	rg.GET("/rooms/:id/events", h.ListEvents)
	rg.GET("/rooms/:id/players", h.ListPlayers)
	rg.DELETE("/events/:id", h.DeleteEvent)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.ListRooms(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var in service.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logrus.WithError(err).Warn("Handler.CreateRoom: Invalid request body")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	room, err := h.rooms.CreateRoom(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, room)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, room)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var in service.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateRoom: Invalid request body")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	room, err := h.rooms.UpdateRoom(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.rooms.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEvents returns the room's history, newest first.
func (h *RoomHandler) ListEvents(c *gin.Context) {
	events, err := h.history.ListEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, events)
}

func (h *RoomHandler) DeleteEvent(c *gin.Context) {
	if err := h.history.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandler) ListPlayers(c *gin.Context) {
	players, err := h.players.ListPlayers(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, players)
}
