package apperror

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrGameFinished         = errors.New("game is already finished")
	ErrGaveUp               = errors.New("player gave up after too many rejected moves")
	ErrNoAvailableMoves     = errors.New("no available moves")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNoActiveMatch        = errors.New("no active match")
)
