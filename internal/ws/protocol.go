package ws

import (
	"github.com/mvidak/tictactoe-go/internal/model"
)

// CommandType identifies a client-to-server command on the real-time surface
type CommandType string

const (
	CommandCreateRoom     CommandType = "createRoom"
	CommandJoinRoom       CommandType = "joinRoom"
	CommandPlayerMove     CommandType = "playerMove"
	CommandGameOver       CommandType = "gameOver"
	CommandRequestRestart CommandType = "requestRestart"
	CommandCancelRestart  CommandType = "cancelRestart"
	CommandGetHistory     CommandType = "getGameHistory"
)

// Command is the wire envelope for all client-to-server messages. Fields
// beyond Type are optional and command-specific.
type Command struct {
	Type CommandType `json:"type"`

	// Room is the target room code. createRoom leaves it empty to have the
	// server mint one.
	Room model.RoomCode `json:"room,omitempty"`

	// Board is the full proposed snapshot for playerMove
	Board *model.BoardSnapshot `json:"board,omitempty"`
}
