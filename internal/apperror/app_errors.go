package apperror

import "errors"

var (
	ErrNoActiveGame = errors.New("no active game")
	ErrInvalidToken = errors.New("invalid session token")
)
