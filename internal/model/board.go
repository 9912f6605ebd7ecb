package model

// BoardSize is the grid dimension; only 3x3 tic-tac-toe is supported
const BoardSize = 3

// Symbol is a player's mark. The zero value means an empty cell.
type Symbol string

const (
	SymbolNone Symbol = ""
	SymbolX    Symbol = "X"
	SymbolO    Symbol = "O"
)

// Other returns the opposing symbol
func (s Symbol) Other() Symbol {
	switch s {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	default:
		return SymbolNone
	}
}

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Valid returns true if the position is within the grid
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// BoardSnapshot is one immutable state of the grid at a point in the move
// sequence. It is a value type: Place returns a new snapshot rather than
// mutating, so historical replay is exact.
type BoardSnapshot [BoardSize][BoardSize]Symbol

// Get returns the symbol at the given position, or SymbolNone if out of bounds
func (b BoardSnapshot) Get(pos Position) Symbol {
	if !pos.Valid() {
		return SymbolNone
	}
	return b[pos.Row][pos.Col]
}

// Place returns a copy of the snapshot with the symbol set at pos
func (b BoardSnapshot) Place(pos Position, sym Symbol) BoardSnapshot {
	next := b
	if pos.Valid() {
		next[pos.Row][pos.Col] = sym
	}
	return next
}

// IsEmpty returns true if the cell at pos holds no symbol
func (b BoardSnapshot) IsEmpty(pos Position) bool {
	return b.Get(pos) == SymbolNone
}

// IsFull returns true if every cell holds a symbol
func (b BoardSnapshot) IsFull() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col] == SymbolNone {
				return false
			}
		}
	}
	return true
}

// EmptyPositions returns all vacant cells in row-major order
func (b BoardSnapshot) EmptyPositions() []Position {
	var empty []Position
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col] == SymbolNone {
				empty = append(empty, Position{Row: row, Col: col})
			}
		}
	}
	return empty
}

// DiffOne returns the single cell where next differs from b. It reports
// ok=false when the snapshots are identical, differ in more than one cell,
// or the changed cell was not previously empty.
func (b BoardSnapshot) DiffOne(next BoardSnapshot) (Position, Symbol, bool) {
	var changed Position
	var placed Symbol
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col] == next[row][col] {
				continue
			}
			if b[row][col] != SymbolNone {
				return Position{}, SymbolNone, false
			}
			changed = Position{Row: row, Col: col}
			placed = next[row][col]
			count++
		}
	}
	if count != 1 {
		return Position{}, SymbolNone, false
	}
	return changed, placed, true
}
