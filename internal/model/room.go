package model

// RoomCode is the shared identifier players use to meet in a room
type RoomCode string

// RoomPhase represents the current state of a match session
type RoomPhase string

const (
	RoomPhaseAwaitingOpponent RoomPhase = "awaiting_opponent" // only X is bound
	RoomPhaseActive           RoomPhase = "active"            // both slots bound, game running
	RoomPhaseFinished         RoomPhase = "finished"          // win or draw reached
	RoomPhaseAbandoned        RoomPhase = "abandoned"         // emptied out before finishing
)

// Room holds the shared state of one match session. Slot occupancy is keyed
// by authenticated player identity; an empty PlayerID means a vacant slot.
type Room struct {
	Code  RoomCode
	Phase RoomPhase

	SlotX PlayerID
	SlotO PlayerID

	// Moves is the append-only sequence of board snapshots, cleared only by
	// a confirmed restart
	Moves []BoardSnapshot

	// GameRecordID is the external persistence key, empty if the record
	// could not be created
	GameRecordID string

	Winner Symbol // set when Phase is finished; SymbolNone for a draw
}

// SymbolOf returns the symbol bound to the given identity, or SymbolNone if
// the identity occupies no slot
func (r *Room) SymbolOf(id PlayerID) Symbol {
	switch {
	case id != "" && id == r.SlotX:
		return SymbolX
	case id != "" && id == r.SlotO:
		return SymbolO
	default:
		return SymbolNone
	}
}

// Occupant returns the identity bound to the given symbol
func (r *Room) Occupant(sym Symbol) PlayerID {
	switch sym {
	case SymbolX:
		return r.SlotX
	case SymbolO:
		return r.SlotO
	default:
		return ""
	}
}

// BothSlotsBound returns true when X and O are both occupied
func (r *Room) BothSlotsBound() bool {
	return r.SlotX != "" && r.SlotO != ""
}

// Turn returns the symbol whose move it is: X on even move counts, O on odd
func (r *Room) Turn() Symbol {
	if len(r.Moves)%2 == 0 {
		return SymbolX
	}
	return SymbolO
}

// CurrentBoard returns the latest snapshot, or an empty board before any move
func (r *Room) CurrentBoard() BoardSnapshot {
	if len(r.Moves) == 0 {
		return BoardSnapshot{}
	}
	return r.Moves[len(r.Moves)-1]
}

// SwapSlots exchanges the X and O occupants
func (r *Room) SwapSlots() {
	r.SlotX, r.SlotO = r.SlotO, r.SlotX
}

// Slots is the wire representation of slot assignment
type Slots struct {
	X PlayerID `json:"x"`
	O PlayerID `json:"o"`
}

// SlotAssignment returns the current occupants in wire form
func (r *Room) SlotAssignment() Slots {
	return Slots{X: r.SlotX, O: r.SlotO}
}
