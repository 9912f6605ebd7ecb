package response

import (
	"time"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Room is the response for room creation
type Room struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	GameID string `json:"game_id,omitempty"`
}

// GameSummary represents a finished game in history listings
type GameSummary struct {
	ID         string    `json:"id"`
	RoomCode   string    `json:"room_code"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o,omitempty"`
	Winner     *string   `json:"winner"`
	MoveCount  int       `json:"move_count"`
	FinishedAt time.Time `json:"finished_at"`
}

// GameSummaryFromModel converts model.GameSummary. A draw has a nil winner.
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	var winner *string
	if g.Winner != model.SymbolNone {
		w := string(g.Winner)
		winner = &w
	}
	return GameSummary{
		ID:         string(g.ID),
		RoomCode:   string(g.RoomCode),
		PlayerX:    string(g.PlayerX),
		PlayerO:    string(g.PlayerO),
		Winner:     winner,
		MoveCount:  g.MoveCount,
		FinishedAt: g.FinishedAt,
	}
}

// GameMoves is the response for a game's move log
type GameMoves struct {
	ID    string                `json:"id"`
	Moves []model.BoardSnapshot `json:"moves"`
}

// BotMove is the response for a practice bot move
type BotMove struct {
	Position model.Position      `json:"position"`
	Board    model.BoardSnapshot `json:"board"`
}
