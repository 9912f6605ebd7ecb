package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/auth"
	"github.com/mvidak/tictactoe-go/internal/services/match"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler authenticates websocket connections and dispatches their commands
// into the match registry
type Handler struct {
	auth     *auth.Service
	registry *match.Registry
	manager  *Manager
	logger   *slog.Logger
}

// NewHandler creates a new websocket handler
func NewHandler(authService *auth.Service, registry *match.Registry, manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     authService,
		registry: registry,
		manager:  manager,
		logger:   logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the connection for an authenticated client and runs its
// read loop. Authentication failures are rejected before the upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	session, err := h.auth.ValidateSession(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(conn, session.PlayerID)

	h.logger.Info("client connected", slog.String("player_id", string(client.playerID)))

	go client.writePump()
	client.readPump(h)
}

// sessionToken pulls the session token from the query string or, failing
// that, the session cookie
func sessionToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if c, err := r.Cookie(auth.SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// dispatch routes one client command. Rejections that the protocol defines
// as terminal events (room missing, room full, code collision) are sent to
// the issuing client only; everything else invalid is dropped.
func (h *Handler) dispatch(c *Client, cmd Command) {
	ctx := context.Background()

	switch cmd.Type {
	case CommandCreateRoom:
		h.createRoom(ctx, c, cmd.Room)
	case CommandJoinRoom:
		h.joinRoom(ctx, c, cmd.Room)
	case CommandPlayerMove:
		if c.room == "" || cmd.Board == nil {
			return
		}
		if err := h.registry.Move(ctx, c.room, c.playerID, *cmd.Board); err != nil {
			h.logger.Debug("move rejected",
				slog.String("room_code", string(c.room)),
				slog.String("player_id", string(c.playerID)),
				slog.String("error", err.Error()),
			)
		}
	case CommandGameOver:
		if c.room == "" {
			return
		}
		if err := h.registry.GameOver(ctx, c.room, c.playerID); err != nil {
			h.logger.Debug("game over claim rejected",
				slog.String("room_code", string(c.room)),
				slog.String("error", err.Error()),
			)
		}
	case CommandRequestRestart:
		if c.room == "" {
			return
		}
		if err := h.registry.RequestRestart(c.room, c.playerID); err != nil {
			h.logger.Debug("restart vote rejected",
				slog.String("room_code", string(c.room)),
				slog.String("error", err.Error()),
			)
		}
	case CommandCancelRestart:
		if c.room == "" {
			return
		}
		_ = h.registry.CancelRestart(c.room, c.playerID)
	case CommandGetHistory:
		if c.room == "" {
			return
		}
		payload, err := h.registry.History(c.room)
		if err != nil {
			c.trySend(model.NewSignal(model.EventRoomNotFound))
			return
		}
		c.trySend(model.NewEvent(model.EventHistory, payload))
	default:
		h.logger.Debug("unknown command", slog.String("type", string(cmd.Type)))
	}
}

func (h *Handler) createRoom(ctx context.Context, c *Client, code model.RoomCode) {
	h.leaveCurrentRoom(ctx, c)

	if code == "" {
		code = h.registry.MintCode()
	}

	// Enroll in the broadcast group before registration so the registry's
	// member count already includes this connection when it checks emptiness
	h.manager.add(code, c)

	result, err := h.registry.CreateRoom(ctx, code, c.playerID)
	if err != nil {
		h.manager.remove(code, c)
		h.registry.RemoveIfEmpty(ctx, code)
		c.trySend(model.NewSignal(model.EventRoomAlreadyExists))
		return
	}

	c.room = code

	c.trySend(model.NewEvent(model.EventAssignSymbol, model.AssignSymbolPayload{
		Symbol: result.Symbol,
		Room:   code,
		GameID: result.GameID,
	}))
}

func (h *Handler) joinRoom(ctx context.Context, c *Client, code model.RoomCode) {
	if code == "" {
		c.trySend(model.NewSignal(model.EventRoomNotFound))
		return
	}

	enrolling := c.room != code
	if enrolling {
		h.leaveCurrentRoom(ctx, c)
		// Enroll before admission so the registry's member count already
		// includes this connection when it checks emptiness
		h.manager.add(code, c)
	}

	result, err := h.registry.JoinRoom(ctx, code, c.playerID)
	if err != nil {
		if enrolling {
			h.manager.remove(code, c)
			h.registry.RemoveIfEmpty(ctx, code)
		}
		switch {
		case errors.Is(err, model.ErrRoomNotFound):
			c.trySend(model.NewSignal(model.EventRoomNotFound))
		case errors.Is(err, model.ErrRoomFull):
			c.trySend(model.NewSignal(model.EventRoomFull))
		default:
			h.logger.Warn("join failed",
				slog.String("room_code", string(code)),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	if enrolling {
		c.room = code
	}

	c.trySend(model.NewEvent(model.EventAssignSymbol, model.AssignSymbolPayload{
		Symbol: result.Symbol,
		Room:   code,
	}))
}

// leaveCurrentRoom detaches the client from its room, if any, before it
// enters another one
func (h *Handler) leaveCurrentRoom(ctx context.Context, c *Client) {
	if c.room == "" {
		return
	}
	code := c.room
	c.room = ""

	h.manager.remove(code, c)
	h.registry.Disconnect(code, c.playerID)
	h.registry.RemoveIfEmpty(ctx, code)
}

// disconnect runs when a client's read loop ends. The opponent is notified,
// and the room itself is removed once its broadcast group is empty.
func (h *Handler) disconnect(c *Client) {
	ctx := context.Background()

	if c.room == "" {
		h.manager.closeDetached(c)
		return
	}

	code := c.room
	h.manager.removeAndClose(code, c)
	h.registry.Disconnect(code, c.playerID)
	h.registry.RemoveIfEmpty(ctx, code)

	h.logger.Info("client disconnected",
		slog.String("player_id", string(c.playerID)),
		slog.String("room_code", string(code)),
	)
}
