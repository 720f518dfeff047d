package model

type MoveStatus int

const (
	MoveDone MoveStatus = iota
	MoveIllegal
	MoveLeavesPlayerInCheck
)

var moveStatusDone = [...]bool{
	MoveDone:                true,
	MoveIllegal:             false,
	MoveLeavesPlayerInCheck: false,
}

var moveStatusNames = [...]string{
	MoveDone:                "done",
	MoveIllegal:             "illegal move",
	MoveLeavesPlayerInCheck: "leaves player in check",
}

func (s MoveStatus) IsDone() bool {
	return moveStatusDone[s]
}

func (s MoveStatus) String() string {
	return moveStatusNames[s]
}

// Err maps a failed status onto its error kind; MoveDone maps to nil.
func (s MoveStatus) Err() error {
	switch s {
	case MoveIllegal:
		return ErrIllegalMove
	case MoveLeavesPlayerInCheck:
		return ErrSelfCheck
	}
	return nil
}

// MoveTransition is the outcome of attempting a move. Position is the
// resulting board when Status is MoveDone and the unchanged origin otherwise.
type MoveTransition struct {
	Origin   *Position
	Position *Position
	Move     Move
	Status   MoveStatus
}
