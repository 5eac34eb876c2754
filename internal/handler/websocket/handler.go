// Package websocket serves the live room view over a websocket connection.
package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/session"
)

// Handler upgrades room view requests and runs one session.Controller per connection.
type Handler struct {
	upgrader websocket.Upgrader
	deps     session.Deps
}

// NewHandler creates a Handler. An empty allowedOrigin accepts any origin.
func NewHandler(deps session.Deps, allowedOrigin string) *Handler {
	if deps.Rooms == nil || deps.EventTypes == nil || deps.Events == nil || deps.Feed == nil || deps.Generator == nil {
		panic("session dependencies cannot be nil for websocket Handler")
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		deps: deps,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/ws/rooms/:id", h.HandleConnection)
}

// HandleConnection serves /ws/rooms/:id.
func (h *Handler) HandleConnection(c *gin.Context) {
	roomID := c.Param("id")
	logCtx := logrus.WithFields(logrus.Fields{"component": "ws", "room_id": roomID})

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logCtx.WithError(err).Warn("WS Handler: Failed to upgrade connection")
		return
	}
	logCtx.Info("WS Handler: Connection upgraded")

	// Room operations outlive the upgrade request; a generation that is
	// still running when the viewer leaves completes and is stored.
	ctx := context.WithoutCancel(c.Request.Context())
	client := newClient(conn, session.New(roomID, h.deps), logCtx)
	client.run(ctx)
}
