package model

import "errors"

var (
	ErrInvalidSquare     = errors.New("square out of range")
	ErrIllegalMove       = errors.New("illegal move")
	ErrSelfCheck         = errors.New("move leaves own king in check")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrNullMoveExecution = errors.New("cannot execute the null move")
	ErrInvalidFEN        = errors.New("invalid FEN")

	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
	ErrStalePosition = errors.New("position changed while searching")
)
