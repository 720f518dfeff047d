package model

// Ply is one logged half-move.
type Ply struct {
	Move     Move
	Notation string
	Result   *Position
}

type MoveLog struct {
	plies []Ply
}

func NewMoveLog() *MoveLog {
	return &MoveLog{plies: make([]Ply, 0)}
}

func (l *MoveLog) Add(move Move, notation string, result *Position) {
	l.plies = append(l.plies, Ply{Move: move, Notation: notation, Result: result})
}

func (l *MoveLog) Moves() []Ply {
	plies := make([]Ply, len(l.plies))
	copy(plies, l.plies)
	return plies
}

func (l *MoveLog) Size() int {
	return len(l.plies)
}

func (l *MoveLog) Clear() {
	l.plies = l.plies[:0]
}

// RemoveLast drops the most recent ply and reports whether there was one.
func (l *MoveLog) RemoveLast() (Ply, bool) {
	if len(l.plies) == 0 {
		return Ply{}, false
	}
	last := l.plies[len(l.plies)-1]
	l.plies = l.plies[:len(l.plies)-1]
	return last, true
}

// TakenPieces groups every captured piece by the side that lost it.
func (l *MoveLog) TakenPieces() map[Alliance][]Piece {
	taken := map[Alliance][]Piece{White: {}, Black: {}}
	for _, ply := range l.plies {
		if c := ply.Move.Captured; c != nil {
			taken[c.Alliance] = append(taken[c.Alliance], *c)
		}
	}
	return taken
}
