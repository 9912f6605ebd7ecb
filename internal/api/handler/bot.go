package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mvidak/tictactoe-go/internal/api/request"
	"github.com/mvidak/tictactoe-go/internal/api/response"
	"github.com/mvidak/tictactoe-go/internal/services/bot"
)

// BotHandler serves practice-opponent moves
type BotHandler struct {
	botService *bot.Service
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService *bot.Service) *BotHandler {
	return &BotHandler{botService: botService}
}

// Move handles POST /api/v1/bot/move
func (h *BotHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.BotMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	pos, next, err := h.botService.SuggestMove(req.Board, req.Symbol)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BotMove{
		Position: pos,
		Board:    next,
	})
}
