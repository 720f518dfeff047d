package model

// Alliance is one of the two sides of the board.
type Alliance string

const (
	White Alliance = "white"
	Black Alliance = "black"
)

// Direction is the sign applied to board-index offsets when a piece of this
// alliance moves "forward". White starts at the bottom (high indices).
func (a Alliance) Direction() int {
	if a == White {
		return -1
	}
	return 1
}

func (a Alliance) Opponent() Alliance {
	if a == White {
		return Black
	}
	return White
}

// IsPromotionSquare reports whether a pawn of this alliance promotes on square.
func (a Alliance) IsPromotionSquare(square int) bool {
	if a == White {
		return firstRow[square]
	}
	return eighthRow[square]
}

func (a Alliance) IsPawnStartSquare(square int) bool {
	if a == White {
		return seventhRow[square]
	}
	return secondRow[square]
}

func (a Alliance) Valid() bool {
	return a == White || a == Black
}

type ClientPlayer struct {
	ID       string   `json:"name"`
	Color    Alliance `json:"color"`
	Computer bool     `json:"computer"`
	TimeUsed int      `json:"timeUsed"`
}
