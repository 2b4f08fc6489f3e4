package ws

import (
	"log"
	"net/http"

	"cotacao/infra/middleware"
	"cotacao/internal/wizard"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	InterfaceService wizard.InterfaceService
	hub              *Hub
}

func NewWsHandler(hub *Hub, InterfaceService wizard.InterfaceService) *Handler {
	return &Handler{
		hub:              hub,
		InterfaceService: InterfaceService,
	}
}

var upgrade = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWs godoc
// @Summary Live wizard state.
// @Description Streams the session's state over a websocket: the current snapshot first, then every change.
// @Tags Wizard
// @Param token query string false "Session token"
// @Success 101 {object} OutgoingMessage "State frames"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Router /wizard/ws [get]
// @Security ApiKeyAuth
func (h *Handler) HandleWs(c echo.Context) error {
	sessionID := middleware.SessionID(c)

	cl := &Client{
		Message:   make(chan *OutgoingMessage, 16),
		SessionID: sessionID,
	}

	// registered before the snapshot is read, so no change is missed in between
	if !h.hub.Attach(cl) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"detail": "feed de estado indisponível"})
	}

	state, err := h.InterfaceService.Get(c.Request().Context(), sessionID)
	if err != nil {
		h.hub.Detach(cl)
		return c.JSON(http.StatusNotFound, map[string]string{"detail": err.Error()})
	}

	conn, err := upgrade.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println(err)
		h.hub.Detach(cl)
		return nil
	}
	cl.Conn = conn

	select {
	case cl.Message <- &OutgoingMessage{Type: TypeState, SessionID: sessionID, State: state}:
	default:
		log.Printf("[WS] fila cheia, snapshot da sessão %s descartado", sessionID)
	}

	go cl.writeMessage()

	cl.readMessage(h.hub)

	return nil
}
