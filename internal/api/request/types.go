package request

import "github.com/mvidak/tictactoe-go/internal/model"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room over HTTP.
// Code is optional; when empty the server mints one.
type CreateRoomRequest struct {
	Code string `json:"code,omitempty"`
}

// BotMoveRequest is the request body for asking the practice bot for a move
type BotMoveRequest struct {
	Board  model.BoardSnapshot `json:"board"`
	Symbol model.Symbol        `json:"symbol"`
}
