package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"superego/domain"
)

// Action names an inbound client event.
type Action string

const (
	ActionAnswer     Action = "ANSWER"
	ActionGuess      Action = "GUESS"
	ActionChangeCard Action = "CHANGE_CARD"
	ActionReady      Action = "READY"
	ActionSubscribe  Action = "SUBSCRIBE"
	ActionRead       Action = "READ"
)

// Event is one parsed inbound frame.
type Event struct {
	TimeReceived time.Time
	Action       Action
	Issuer       string
	Params       []any
}

// ErrMissingEventAction is returned when an inbound frame has no action key.
var ErrMissingEventAction = errors.New("event is missing the action key")

// ErrMissingEventIssuer is returned when an inbound frame has no issuer key.
var ErrMissingEventIssuer = errors.New("event is missing the issuer key")

// DataEncodingInvalidError reports an inbound frame that is not valid UTF-8.
type DataEncodingInvalidError struct {
	Encoding string
}

func (e *DataEncodingInvalidError) Error() string {
	return fmt.Sprintf("incoming data is not encoded properly (%s)", e.Encoding)
}

// UnknownEventActionError reports an action name with no registered meaning.
type UnknownEventActionError struct {
	ActionName string
}

func (e *UnknownEventActionError) Error() string {
	return fmt.Sprintf("event action unknown: %s", e.ActionName)
}

// InvalidIssuerError reports an issuer value that is not a UUID.
type InvalidIssuerError struct {
	Issuer string
}

func (e *InvalidIssuerError) Error() string {
	return fmt.Sprintf("event issuer is not a valid UUID: %s", e.Issuer)
}

var knownActions = map[Action]bool{
	ActionAnswer:     true,
	ActionGuess:      true,
	ActionChangeCard: true,
	ActionReady:      true,
	ActionSubscribe:  true,
	ActionRead:       true,
}

// ParseEvent decodes one inbound text frame into an Event. The action and
// issuer keys are required, params defaults to an empty list.
func ParseEvent(frame []byte, timeReceived time.Time) (Event, error) {
	if !utf8.Valid(frame) {
		return Event{}, &DataEncodingInvalidError{Encoding: "utf-8"}
	}

	var raw struct {
		Action *string `json:"action"`
		Issuer *string `json:"issuer"`
		Params []any   `json:"params"`
	}
	if err := json.Unmarshal(frame, &raw); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}

	if raw.Action == nil {
		return Event{}, ErrMissingEventAction
	}
	if raw.Issuer == nil {
		return Event{}, ErrMissingEventIssuer
	}

	action := Action(*raw.Action)
	if !knownActions[action] {
		return Event{}, &UnknownEventActionError{ActionName: *raw.Action}
	}

	if _, err := uuid.Parse(*raw.Issuer); err != nil {
		return Event{}, &InvalidIssuerError{Issuer: *raw.Issuer}
	}

	params := raw.Params
	if params == nil {
		params = []any{}
	}

	return Event{
		TimeReceived: timeReceived,
		Action:       action,
		Issuer:       *raw.Issuer,
		Params:       params,
	}, nil
}

// Status classifies an outbound feedback frame.
type Status string

const (
	StatusAcknowledged Status = "ACK"
	StatusError        Status = "ERR"
	StatusGameState    Status = "STAT"
)

// Feedback is the single outbound frame shape.
type Feedback struct {
	Status Status `json:"status"`
	Data   any    `json:"data"`
}

// timeLayout is MM/DD/YY HH:MM:SS.
const timeLayout = "01/02/06 15:04:05"

// PlayerStatePayload is the wire form of one player's state.
type PlayerStatePayload struct {
	GUID            string `json:"guid"`
	Name            string `json:"name"`
	Points          int    `json:"points"`
	PointsChange    int    `json:"points_change"`
	AwaitedToAnswer bool   `json:"awaited_to_answer"`
	AwaitedToGuess  bool   `json:"awaited_to_guess"`
	Ready           bool   `json:"ready"`
}

// GameStatePayload is the wire form of a game state snapshot.
type GameStatePayload struct {
	Time         string               `json:"time"`
	Phase        string               `json:"phase"`
	PlayerStates []PlayerStatePayload `json:"player_states"`
	PointsInBank int                  `json:"points_in_bank"`
	RoundNumber  int                  `json:"round_number"`
	CurrentCard  domain.Card          `json:"current_card"`
	CardChanged  bool                 `json:"card_changed"`
}

// NewGameStatePayload converts a domain snapshot into its wire form.
func NewGameStatePayload(state domain.GameState) GameStatePayload {
	players := make([]PlayerStatePayload, 0, len(state.PlayerStates))
	for _, ps := range state.PlayerStates {
		players = append(players, PlayerStatePayload{
			GUID:            ps.GUID,
			Name:            ps.Name,
			Points:          ps.Points,
			PointsChange:    ps.PointsChange,
			AwaitedToAnswer: ps.AwaitedToAnswer,
			AwaitedToGuess:  ps.AwaitedToGuess,
			Ready:           ps.Ready,
		})
	}
	return GameStatePayload{
		Time:         state.Time.Format(timeLayout),
		Phase:        string(state.Phase),
		PlayerStates: players,
		PointsInBank: state.PointsInBank,
		RoundNumber:  state.RoundNumber,
		CurrentCard:  state.CurrentCard,
		CardChanged:  state.CardChanged,
	}
}

// SerializeConfirmation builds an ACK frame.
func SerializeConfirmation() []byte {
	return marshalFeedback(Feedback{Status: StatusAcknowledged})
}

// SerializeError builds an ERR frame carrying the error message.
func SerializeError(err error) []byte {
	return marshalFeedback(Feedback{Status: StatusError, Data: err.Error()})
}

// SerializeGameState builds a STAT frame carrying the snapshot.
func SerializeGameState(state domain.GameState) []byte {
	return marshalFeedback(Feedback{
		Status: StatusGameState,
		Data:   NewGameStatePayload(state),
	})
}

func marshalFeedback(feedback Feedback) []byte {
	data, err := json.Marshal(feedback)
	if err != nil {
		// Feedback payloads are built from plain structs and strings.
		panic(fmt.Sprintf("marshaling feedback: %v", err))
	}
	return data
}
