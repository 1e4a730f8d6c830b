package domain

import "time"

// ActionName identifies a player action on the game state machine.
type ActionName string

const (
	AnswerAction     ActionName = "ANSWER"
	GuessAction      ActionName = "GUESS"
	ChangeCardAction ActionName = "CHANGE_CARD"
	MarkReadyAction  ActionName = "MARK_READY"
)

// PhaseName identifies one of the four states of the game state machine.
type PhaseName string

const (
	AnswerPhaseName   PhaseName = "ANSWER_PHASE"
	GuessPhaseName    PhaseName = "GUESS_PHASE"
	ResultPhaseName   PhaseName = "RESULT_PHASE"
	GameOverPhaseName PhaseName = "GAME_OVER_PHASE"
)

// PlayerState is an immutable per-player view inside a snapshot.
type PlayerState struct {
	GUID            string
	Name            string
	Points          int
	PointsChange    int
	AwaitedToAnswer bool
	AwaitedToGuess  bool
	Ready           bool
}

// GameState is an immutable snapshot of the game fit for serialization and
// broadcast. Player states appear in pool order, so the first entry is the
// current answerer in every phase but game over.
type GameState struct {
	Time         time.Time
	Phase        PhaseName
	PlayerStates []PlayerState
	PointsInBank int
	RoundNumber  int
	CurrentCard  Card
	CardChanged  bool
}

// GameContext carries the per-round constants.
type GameContext struct {
	RoundNumber int
	MaxRounds   int
}

// Guess pairs the predicted answer with the wagered bet.
type Guess struct {
	Answer Answer
	Bet    int
}
