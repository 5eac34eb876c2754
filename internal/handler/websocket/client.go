package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Message types.
const (
	TypePassword = "password"
	TypeDraw     = "draw"
	TypeChoose   = "choose"
	TypeMission  = "mission"
	TypeView     = "view"
	TypeError    = "error"
)

// ClientMessage is a command sent by the viewer.
type ClientMessage struct {
	Type     string `json:"type"`
	Password string `json:"password,omitempty"`
	TypeID   string `json:"typeId,omitempty"`
}

// ViewMessage carries the full room view after every change.
type ViewMessage struct {
	Type string `json:"type"`
	session.View
}

// ErrorMessage reports a rejected command.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type client struct {
	conn *websocket.Conn
	ctrl *session.Controller
	log  *logrus.Entry

	send chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn, ctrl *session.Controller, log *logrus.Entry) *client {
	return &client{
		conn: conn,
		ctrl: ctrl,
		log:  log,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}
}

func (c *client) run(ctx context.Context) {
	go c.writePump()
	// Commands are read only once the room has loaded, so a password sent
	// right after connecting meets the gate instead of the Loading state.
	// Open reports failures through the view state.
	_ = c.ctrl.Open(ctx)
	go c.readPump(ctx)
}

// spawn runs a controller operation off the read loop so pongs keep
// flowing during long generations.
func (c *client) spawn(op func()) {
	go op()
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		close(c.done)
		c.conn.Close()
		c.ctrl.Close()
		c.log.Info("readPump exited, room view closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				c.log.Debug("WebSocket connection closed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(errors.New("malformed message"))
			continue
		}
		c.dispatch(ctx, msg)
	}
}

func (c *client) dispatch(ctx context.Context, msg ClientMessage) {
	c.log.WithField("type", msg.Type).Debug("Received client message")
	switch msg.Type {
	case TypePassword:
		c.spawn(func() { c.reply(c.ctrl.SubmitPassword(ctx, msg.Password)) })
	case TypeDraw:
		_, err := c.ctrl.DrawVariants()
		c.reply(err)
	case TypeChoose:
		c.spawn(func() {
			_, err := c.ctrl.Choose(ctx, msg.TypeID)
			c.reply(err)
		})
	case TypeMission:
		c.spawn(func() {
			_, err := c.ctrl.GenerateMission(ctx)
			c.reply(err)
		})
	default:
		c.reply(errors.New("unknown message type " + msg.Type))
	}
}

// reply sends err to the viewer; nil is a no-op since the view update
// already reflects success.
func (c *client) reply(err error) {
	if err == nil {
		return
	}
	payload, mErr := json.Marshal(ErrorMessage{Type: TypeError, Error: err.Error()})
	if mErr != nil {
		return
	}
	select {
	case c.send <- payload:
	case <-c.done:
	default:
		c.log.Warn("Send buffer full, dropping error reply")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Debug("writePump exited")
	}()

	if err := c.writeView(); err != nil {
		return
	}
	for {
		select {
		case _, ok := <-c.ctrl.Updates():
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeView(); err != nil {
				return
			}
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.WithError(err).Warn("Failed to write message to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Warn("Failed to send ping message")
				return
			}
		}
	}
}

func (c *client) writeView() error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(ViewMessage{Type: TypeView, View: c.ctrl.View()}); err != nil {
		c.log.WithError(err).Warn("Failed to write view to websocket")
		return err
	}
	return nil
}
