package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrMatchFinalized        = errors.New("match is finalized")
	ErrVotingClosed          = errors.New("voting window is closed")
	ErrAlreadyVoted          = errors.New("voter already voted for this match")
)
