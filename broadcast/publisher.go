package broadcast

import (
	"github.com/Dosada05/tournament-pairing/brackets"
)

// Publisher forwards engine events to the spectators of the tournament they
// belong to.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) Notify(e brackets.Event) {
	if p == nil || p.hub == nil {
		return
	}
	room := RoomForTournament(e.TournamentID)
	p.hub.BroadcastToRoom(room, WebSocketMessage{
		Type:    string(e.Type),
		Payload: e,
		RoomID:  room,
	})
}

var _ brackets.Observer = (*Publisher)(nil)
