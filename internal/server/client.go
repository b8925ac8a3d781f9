package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"dose-response/internal/network"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
	"dose-response/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - наблюдатель, подключённый по WebSocket. Только получает снимки.
type Client struct {
	ID   string
	Hub  *network.Broadcaster
	Conn *websocket.Conn
	Send chan api.ServerResponse
	log  *logrus.Entry
}

// NewClient регистрирует наблюдателя в хабе. Сразу после подключения он получает
// последний снимок, чтобы не ждать следующего тика.
func NewClient(hub *network.Broadcaster, conn *websocket.Conn) *Client {
	id := utils.NewSessionID()
	c := &Client{
		ID:   id,
		Hub:  hub,
		Conn: conn,
		Send: hub.Register(id),
		log: logger.Log.WithFields(logrus.Fields{
			"component":   "server",
			"spectator":   id,
			"remote_addr": conn.RemoteAddr().String(),
		}),
	}
	if msg, ok := hub.Latest(); ok {
		msg.Type = api.TypeHello
		select {
		case c.Send <- msg:
		default:
		}
	}
	c.log.Info("Spectator connected")
	return c
}

// readPump только следит за соединением: наблюдатель ничего не отправляет в игру.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Spectator disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS error")
			}
			return
		}
	}
}

// writePump отправляет снимки клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Хаб закрыл канал
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
