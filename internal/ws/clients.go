package ws

import (
	"log"
	"time"

	"cotacao/internal/wizard"

	"github.com/gorilla/websocket"
)

const (
	TypeState = "state"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Client struct {
	Conn      *websocket.Conn
	Message   chan *OutgoingMessage
	SessionID string
}

type OutgoingMessage struct {
	Type      string       `json:"type"`
	SessionID string       `json:"-"`
	State     wizard.State `json:"state"`
}

func (c *Client) writeMessage() {
	ticker := time.NewTicker(pingPeriod)
	sent := int64(-1)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Message:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// the snapshot and live updates can arrive out of order
			if message.State.Revision <= sent {
				continue
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}
			sent = message.State.Revision

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readMessage only drains control frames; the feed is server to client.
func (c *Client) readMessage(hub *Hub) {
	defer func() {
		hub.Detach(c)
		_ = c.Conn.Close()
	}()

	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] conexão encerrada na sessão %s: %v", c.SessionID, err)
			}
			return
		}
	}
}
