package domain

import (
	"errors"
	"fmt"
)

// ErrCardAlreadyChanged is returned when the answerer tries to change the
// card twice within the same answer phase.
var ErrCardAlreadyChanged = errors.New("card already changed this round")

// ErrEmptyDeck is returned when constructing a deck without any cards.
var ErrEmptyDeck = errors.New("deck must contain at least one card")

// IllegalPlayerActionError reports an action that is not legal for the given
// player in the current game phase.
type IllegalPlayerActionError struct {
	PlayerGUID string
	Action     ActionName
	Phase      PhaseName
	Info       string
}

func (e *IllegalPlayerActionError) Error() string {
	msg := fmt.Sprintf("illegal game action: player %s; action: %s; game phase: %s",
		e.PlayerGUID, e.Action, e.Phase)
	if e.Info != "" {
		msg += "; " + e.Info
	}
	return msg
}

// PlayerAlreadyAnsweredError reports a second answer submission from the
// same player within one round.
type PlayerAlreadyAnsweredError struct {
	PlayerGUID string
}

func (e *PlayerAlreadyAnsweredError) Error() string {
	return fmt.Sprintf("player %s already answered", e.PlayerGUID)
}

// PlayerAlreadyBetError reports a second bet from the same player within one
// round.
type PlayerAlreadyBetError struct {
	PlayerGUID string
}

func (e *PlayerAlreadyBetError) Error() string {
	return fmt.Sprintf("player %s already bet", e.PlayerGUID)
}

// InvalidBetValueError reports a bet outside [MinBet, MaxBet].
type InvalidBetValueError struct {
	Bet int
}

func (e *InvalidBetValueError) Error() string {
	return fmt.Sprintf("invalid bet: %d", e.Bet)
}

// PlayerCannotAffordBetError reports a bet larger than the player's points.
type PlayerCannotAffordBetError struct {
	PlayerGUID string
	Bet        int
	Points     int
}

func (e *PlayerCannotAffordBetError) Error() string {
	return fmt.Sprintf("player %s tried to bet %d while having %d points",
		e.PlayerGUID, e.Bet, e.Points)
}

// PlayerAlreadyMarkedAsReadyError reports a duplicate ready mark in the
// result phase.
type PlayerAlreadyMarkedAsReadyError struct {
	PlayerGUID string
}

func (e *PlayerAlreadyMarkedAsReadyError) Error() string {
	return fmt.Sprintf("player %s already marked as ready", e.PlayerGUID)
}
