package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/tournament-pairing/broadcast"
	"github.com/Dosada05/tournament-pairing/services"
)

type WebSocketHandler struct {
	hub               *broadcast.Hub
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
}

// NewWebSocketHandler accepts connections from any origin in allowedOrigins;
// "*" allows all of them.
func NewWebSocketHandler(hub *broadcast.Hub, ts services.TournamentService, allowedOrigins []string) *WebSocketHandler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
	}
}

// ServeWs подписывает клиента на события турнира.
// Клиент должен подключаться к /ws/tournaments/{tournamentID}
// @Summary События турнира по WebSocket
// @Tags realtime
// @Param tournamentID path int true "ID турнира"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /ws/tournaments/{tournamentID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tournamentService.Get(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		log.Printf("Failed to upgrade connection for tournament %d: %v", id, err)
		return
	}

	roomID := broadcast.RoomForTournament(id)
	client := &broadcast.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256), // Буферизированный канал
		Room: roomID,
	}
	if !h.hub.Join(client) {
		log.Printf("Hub is stopped, rejecting client for room %s", roomID)
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
