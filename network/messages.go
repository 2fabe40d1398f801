package network

import (
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
)

// Message types exchanged with the peer.
const (
	msgJoin     = "join"
	msgLeave    = "leave"
	msgState    = "state"
	msgPosition = "position"
	msgChat     = "chat"
	msgPing     = "ping"
	msgPong     = "pong"
)

// message is the JSON envelope for every frame sent or received.
type message struct {
	Type string `json:"type"`

	// Remote avatar id; zero for messages about the local avatar.
	ID uint32 `json:"id,omitempty"`

	State    string      `json:"state,omitempty"`
	Position *types.Vec3 `json:"position,omitempty"`
	Rotation *types.Vec3 `json:"rotation,omitempty"`
	Text     string      `json:"text,omitempty"`

	// Ping timestamp in unix nanoseconds, echoed back by pongs.
	Sent int64 `json:"sent,omitempty"`
}

func stateMessage(state subsystem.StateChange) message {
	return message{Type: msgState, State: string([]byte{byte(state)})}
}

func positionMessage(pos subsystem.PositionUpdate) message {
	return message{Type: msgPosition, Position: &pos.Position, Rotation: &pos.Rotation}
}

// Get the position carried by the message. Missing fields are zero.
func (m message) positionUpdate() subsystem.PositionUpdate {
	var out subsystem.PositionUpdate
	if m.Position != nil {
		out.Position = *m.Position
	}
	if m.Rotation != nil {
		out.Rotation = *m.Rotation
	}
	return out
}

// Get the state code carried by the message.
func (m message) stateChange() (subsystem.StateChange, bool) {
	if len(m.State) != 1 {
		return 0, false
	}
	return subsystem.StateChange(m.State[0]), true
}
