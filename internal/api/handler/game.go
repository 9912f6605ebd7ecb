package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mvidak/tictactoe-go/internal/api/middleware"
	"github.com/mvidak/tictactoe-go/internal/api/request"
	"github.com/mvidak/tictactoe-go/internal/api/response"
	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/history"
	"github.com/mvidak/tictactoe-go/internal/services/match"
)

const defaultHistoryLimit = 20

// GameHandler handles room creation and game history endpoints
type GameHandler struct {
	registry *match.Registry
	history  *history.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(registry *match.Registry, historyService *history.Service) *GameHandler {
	return &GameHandler{
		registry: registry,
		history:  historyService,
	}
}

// CreateRoom handles POST /api/v1/games. Rooms are usually created over the
// websocket; this endpoint exists so a client can reserve a room before it
// opens the socket.
func (h *GameHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	code := model.RoomCode(req.Code)
	if code == "" {
		code = h.registry.MintCode()
	}

	result, err := h.registry.CreateRoom(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Room{
		Code:   string(code),
		Symbol: string(result.Symbol),
		GameID: string(result.GameID),
	})
}

// History handles GET /api/v1/games/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	summaries, err := h.history.FinishedGames(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.GameSummary, len(summaries))
	for i, summary := range summaries {
		out[i] = response.GameSummaryFromModel(summary)
	}
	response.JSON(w, http.StatusOK, out)
}

// Moves handles GET /api/v1/games/{game_id}/moves
func (h *GameHandler) Moves(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	moves, err := h.history.GameMoves(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameMoves{
		ID:    string(gameID),
		Moves: moves,
	})
}
