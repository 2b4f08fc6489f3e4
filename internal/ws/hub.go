package ws

import (
	"context"
	"log"
	"sync"

	"cotacao/internal/wizard"
)

// Hub fans wizard state changes out to the websocket clients of each session.
type Hub struct {
	Clients    map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *OutgoingMessage
	Mu         *sync.RWMutex

	// closed when Run returns
	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *OutgoingMessage, 64),
		Mu:         &sync.RWMutex{},
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return

		case cl := <-h.Register:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.SessionID]; !ok {
				h.Clients[cl.SessionID] = make(map[*Client]bool)
			}
			h.Clients[cl.SessionID][cl] = true
			h.Mu.Unlock()

		case cl := <-h.Unregister:
			h.Mu.Lock()
			if clients, ok := h.Clients[cl.SessionID]; ok {
				if _, ok := clients[cl]; ok {
					delete(clients, cl)
					close(cl.Message)
				}
				if len(clients) == 0 {
					delete(h.Clients, cl.SessionID)
				}
			}
			h.Mu.Unlock()

		case m := <-h.Broadcast:
			h.Mu.RLock()
			for cl := range h.Clients[m.SessionID] {
				select {
				case cl.Message <- m:
				default:
					log.Printf("[WS] cliente lento na sessão %s, mensagem descartada", m.SessionID)
				}
			}
			h.Mu.RUnlock()
		}
	}
}

// Attach registers a client. It reports false once the hub has stopped.
func (h *Hub) Attach(cl *Client) bool {
	select {
	case h.Register <- cl:
		return true
	case <-h.done:
		return false
	}
}

// Detach unregisters a client and closes its message channel.
func (h *Hub) Detach(cl *Client) {
	select {
	case h.Unregister <- cl:
	case <-h.done:
		close(cl.Message)
	}
}

// Publish never blocks the wizard; when the broadcast queue is full the update is dropped.
func (h *Hub) Publish(sessionID string, state wizard.State) {
	m := &OutgoingMessage{Type: TypeState, SessionID: sessionID, State: state}
	select {
	case h.Broadcast <- m:
	default:
		log.Printf("[WS] fila cheia, atualização da sessão %s descartada", sessionID)
	}
}

func (h *Hub) Count(sessionID string) int {
	h.Mu.RLock()
	defer h.Mu.RUnlock()
	return len(h.Clients[sessionID])
}
