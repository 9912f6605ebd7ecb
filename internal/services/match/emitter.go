package match

import (
	"github.com/mvidak/tictactoe-go/internal/model"
)

// Emitter delivers events to the connected members of a room's broadcast
// group. The websocket hub implements it; tests substitute a recorder.
// Implementations must tolerate rooms with no connected members.
type Emitter interface {
	// Broadcast sends an event to every connected member of the room
	Broadcast(code model.RoomCode, event model.Event)

	// SendTo sends an event to the connections of a single identity
	SendTo(code model.RoomCode, player model.PlayerID, event model.Event)

	// SendToOthers sends an event to every member except the given identity
	SendToOthers(code model.RoomCode, player model.PlayerID, event model.Event)

	// MemberCount reports the number of connected members of the room. The
	// registry reads it at removal time to decide whether a room is empty.
	MemberCount(code model.RoomCode) int
}
