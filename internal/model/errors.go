package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrRoomFull          = errors.New("room is full")
	ErrNotInRoom         = errors.New("player occupies no slot in room")

	// Move errors: all are swallowed at the transport boundary so an
	// out-of-turn sender learns nothing about the board
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidMove   = errors.New("move is not a single placement on an empty cell")
	ErrGameFinished  = errors.New("game has already concluded")
	ErrGameNotActive = errors.New("game is not active")

	// Game record errors
	ErrGameNotFound = errors.New("game record not found")
)
