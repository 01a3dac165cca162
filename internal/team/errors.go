package team

import "errors"

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamNotInMatch  = errors.New("team does not belong to match")
	ErrTeamFull        = errors.New("team is full")
	ErrPositionTaken   = errors.New("position already taken")
	ErrInvalidPosition = errors.New("position is not a slot of this team")
	ErrAlreadyJoined   = errors.New("user already joined this match")
)
