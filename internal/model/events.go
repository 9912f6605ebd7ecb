package model

// EventType identifies a server-to-client event on the real-time surface
type EventType string

const (
	EventAssignSymbol      EventType = "assignSymbol"
	EventOpponentConnected EventType = "opponentConnected"
	EventOpponentLeft      EventType = "opponentLeft"
	EventOpponentMove      EventType = "opponentMove"
	EventGameFinished      EventType = "gameFinished"
	EventRoomNotFound      EventType = "roomNotFound"
	EventRoomFull          EventType = "roomFull"
	EventRoomAlreadyExists EventType = "roomAlreadyExists"
	EventRestartCountdown  EventType = "restartCountdown"
	EventRestartConfirmed  EventType = "restartConfirmed"
	EventRestartCanceled   EventType = "restartCanceled"
	EventHistory           EventType = "history"
)

// Event is the wire envelope for all server-to-client messages
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// GameFinishedPayload carries the outcome of a concluded game.
// Winner is SymbolNone for a draw.
type GameFinishedPayload struct {
	Winner Symbol `json:"winner"`
}

// HistoryPayload is the synchronous reply to a history request
type HistoryPayload struct {
	Moves   []BoardSnapshot `json:"moves"`
	Players Slots           `json:"players"`
}

// AssignSymbolPayload tells a client which symbol it plays and in which room
type AssignSymbolPayload struct {
	Symbol Symbol   `json:"symbol"`
	Room   RoomCode `json:"room"`
	GameID GameID   `json:"game_id,omitempty"`
}

// RestartCountdownPayload announces how many ticks remain before a lone
// restart vote is canceled
type RestartCountdownPayload struct {
	Remaining int `json:"remaining"`
}

// RestartConfirmedPayload announces a confirmed restart with the
// post-swap slot assignment
type RestartConfirmedPayload struct {
	Players Slots `json:"players"`
}

// NewEvent builds an event with a payload
func NewEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}

// NewSignal builds a payload-less event
func NewSignal(t EventType) Event {
	return Event{Type: t}
}
