package ws

import (
	"sync"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/match"
)

// hub is one room's broadcast group
type hub struct {
	members map[*Client]struct{}
}

// Manager tracks the broadcast group of every room with at least one
// connected member. It is the delivery side of the real-time surface; all
// game semantics live behind it in the match registry.
type Manager struct {
	mu   sync.RWMutex
	hubs map[model.RoomCode]*hub
}

var _ match.Emitter = (*Manager)(nil)

// NewManager creates a new hub manager
func NewManager() *Manager {
	return &Manager{hubs: make(map[model.RoomCode]*hub)}
}

// add enrolls a client in a room's broadcast group
func (m *Manager) add(code model.RoomCode, c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hubs[code]
	if !ok {
		h = &hub{members: make(map[*Client]struct{})}
		m.hubs[code] = h
	}
	h.members[c] = struct{}{}
}

// remove drops a client from a room's broadcast group and returns the number
// of members left. An emptied group is discarded.
func (m *Manager) remove(code model.RoomCode, c *Client) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hubs[code]
	if !ok {
		return 0
	}
	delete(h.members, c)

	remaining := len(h.members)
	if remaining == 0 {
		delete(m.hubs, code)
	}
	return remaining
}

// removeAndClose drops a client from a room's group and closes its send
// channel in the same critical section, so no concurrent fan-out can write
// to a closed channel. Returns the number of members left.
func (m *Manager) removeAndClose(code model.RoomCode, c *Client) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	close(c.send)

	h, ok := m.hubs[code]
	if !ok {
		return 0
	}
	delete(h.members, c)

	remaining := len(h.members)
	if remaining == 0 {
		delete(m.hubs, code)
	}
	return remaining
}

// closeDetached closes the send channel of a client that belongs to no
// room's group
func (m *Manager) closeDetached(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	close(c.send)
}

// MemberCount returns the number of connected members in a room's group
func (m *Manager) MemberCount(code model.RoomCode) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.hubs[code]
	if !ok {
		return 0
	}
	return len(h.members)
}

// Broadcast sends an event to every connected member of the room
func (m *Manager) Broadcast(code model.RoomCode, event model.Event) {
	m.each(code, func(c *Client) bool { return true }, event)
}

// SendTo sends an event to the connections of a single identity
func (m *Manager) SendTo(code model.RoomCode, player model.PlayerID, event model.Event) {
	m.each(code, func(c *Client) bool { return c.playerID == player }, event)
}

// SendToOthers sends an event to every member except the given identity
func (m *Manager) SendToOthers(code model.RoomCode, player model.PlayerID, event model.Event) {
	m.each(code, func(c *Client) bool { return c.playerID != player }, event)
}

func (m *Manager) each(code model.RoomCode, want func(*Client) bool, event model.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.hubs[code]
	if !ok {
		return
	}
	for c := range h.members {
		if want(c) {
			c.trySend(event)
		}
	}
}
