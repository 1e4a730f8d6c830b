package handlers

import (
	"fmt"
	"sync"

	"superego/domain"
	"superego/server/connection"
	"superego/server/events"
)

// InvalidAnswerValueError reports answer text that is not A, B or C.
type InvalidAnswerValueError struct {
	AnswerText string
}

func (e *InvalidAnswerValueError) Error() string {
	return fmt.Sprintf("invalid answer value: %s", e.AnswerText)
}

// IssuerNotCurrentPlayerError reports an answer or card change issued by
// someone other than the current answerer.
type IssuerNotCurrentPlayerError struct {
	IssuerGUID        string
	CurrentPlayerGUID string
}

func (e *IssuerNotCurrentPlayerError) Error() string {
	return fmt.Sprintf("answer issuer is not current player. Issuer ID: %s. Current player ID: %s",
		e.IssuerGUID, e.CurrentPlayerGUID)
}

// IssuerNotGuessingPlayerError reports a guess issued by someone who is not
// one of the currently guessing players.
type IssuerNotGuessingPlayerError struct {
	IssuerGUID          string
	GuessingPlayerGUIDs []string
}

func (e *IssuerNotGuessingPlayerError) Error() string {
	return fmt.Sprintf("guess issuer is not one of currently guessing players. Issuer ID: %s. Currently guessing players: %v",
		e.IssuerGUID, e.GuessingPlayerGUIDs)
}

// UnknownIssuerError reports an issuer GUID that matches no pooled player.
type UnknownIssuerError struct {
	IssuerGUID string
}

func (e *UnknownIssuerError) Error() string {
	return fmt.Sprintf("issuer is not a player in this game: %s", e.IssuerGUID)
}

// ParametersMissingError reports an event frame missing required parameters.
type ParametersMissingError struct {
	Names []string
}

func (e *ParametersMissingError) Error() string {
	return fmt.Sprintf("event is missing parameters: %v", e.Names)
}

// InvalidParameterError reports a parameter of the wrong JSON type.
type InvalidParameterError struct {
	Name     string
	Expected string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("event parameter %s must be a %s", e.Name, e.Expected)
}

// UseCases wraps the game behind the session mutex. Every game mutation and
// every snapshot read goes through here, so all observers and readers see
// transitions in a single causal order.
type UseCases struct {
	mu   sync.Mutex
	game *domain.Game
}

// NewUseCases wraps a game.
func NewUseCases(game *domain.Game) *UseCases {
	return &UseCases{game: game}
}

// Answer submits the issuer's answer. The issuer must be the current
// answerer.
func (u *UseCases) Answer(answerText string, issuerGUID string) error {
	answer, err := ConvertAnswer(answerText)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	current := u.game.CurrentPlayer()
	if current.GUID != issuerGUID {
		return &IssuerNotCurrentPlayerError{
			IssuerGUID:        issuerGUID,
			CurrentPlayerGUID: current.GUID,
		}
	}
	return u.game.Answer(current, answer)
}

// Guess submits the issuer's guess and bet. The issuer must be one of the
// guessing players.
func (u *UseCases) Guess(answerText string, bet int, issuerGUID string) error {
	answer, err := ConvertAnswer(answerText)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var player *domain.Player
	guids := make([]string, 0, len(u.game.GuessingPlayers()))
	for _, p := range u.game.GuessingPlayers() {
		guids = append(guids, p.GUID)
		if p.GUID == issuerGUID {
			player = p
		}
	}
	if player == nil {
		return &IssuerNotGuessingPlayerError{
			IssuerGUID:          issuerGUID,
			GuessingPlayerGUIDs: guids,
		}
	}
	return u.game.Guess(player, domain.Guess{Answer: answer, Bet: bet})
}

// ChangeCard swaps the current card. The issuer must be the current answerer.
func (u *UseCases) ChangeCard(issuerGUID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	current := u.game.CurrentPlayer()
	if current.GUID != issuerGUID {
		return &IssuerNotCurrentPlayerError{
			IssuerGUID:        issuerGUID,
			CurrentPlayerGUID: current.GUID,
		}
	}
	return u.game.ChangeCard(current)
}

// Ready marks the issuer as having seen the round result.
func (u *UseCases) Ready(issuerGUID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	player := u.game.Player(issuerGUID)
	if player == nil {
		return &UnknownIssuerError{IssuerGUID: issuerGUID}
	}
	return u.game.MarkReady(player)
}

// GameState returns the current snapshot.
func (u *UseCases) GameState() domain.GameState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.game.State()
}

// GameOver reports whether the game reached its terminal phase.
func (u *UseCases) GameOver() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.game.Over()
}

// ConvertAnswer maps wire answer text onto the domain answer values.
func ConvertAnswer(answerText string) (domain.Answer, error) {
	switch domain.Answer(answerText) {
	case domain.AnswerA, domain.AnswerB, domain.AnswerC:
		return domain.Answer(answerText), nil
	default:
		return "", &InvalidAnswerValueError{AnswerText: answerText}
	}
}

// Handler reacts to one routed event, replying on the originating client.
type Handler interface {
	Handle(event events.Event, client *connection.Client) error
}

// Router maps event actions onto handlers.
type Router struct {
	handlers map[events.Action]Handler
}

// NewRouter creates a router with no handlers registered.
func NewRouter() *Router {
	return &Router{handlers: make(map[events.Action]Handler)}
}

// Register binds an action to a handler, replacing any previous binding.
func (r *Router) Register(action events.Action, handler Handler) *Router {
	r.handlers[action] = handler
	return r
}

// Route dispatches the event to the handler registered for its action.
func (r *Router) Route(event events.Event, client *connection.Client) error {
	handler, ok := r.handlers[event.Action]
	if !ok {
		return &events.UnknownEventActionError{ActionName: string(event.Action)}
	}
	return handler.Handle(event, client)
}

// NewGameRouter wires the full action set of one game session.
func NewGameRouter(useCases *UseCases, broadcast *connection.Broadcast) *Router {
	return NewRouter().
		Register(events.ActionAnswer, &AnswerHandler{UseCases: useCases}).
		Register(events.ActionGuess, &GuessHandler{UseCases: useCases}).
		Register(events.ActionChangeCard, &ChangeCardHandler{UseCases: useCases}).
		Register(events.ActionReady, &ReadyHandler{UseCases: useCases}).
		Register(events.ActionSubscribe, &SubscribeHandler{Broadcast: broadcast}).
		Register(events.ActionRead, &ReadHandler{UseCases: useCases})
}

// AnswerHandler handles ANSWER events.
type AnswerHandler struct {
	UseCases *UseCases
}

func (h *AnswerHandler) Handle(event events.Event, client *connection.Client) error {
	if len(event.Params) == 0 {
		return &ParametersMissingError{Names: []string{"answer"}}
	}
	answerText, ok := event.Params[0].(string)
	if !ok {
		return &InvalidParameterError{Name: "answer", Expected: "string"}
	}
	if err := h.UseCases.Answer(answerText, event.Issuer); err != nil {
		return err
	}
	client.Send(events.SerializeConfirmation())
	return nil
}

// GuessHandler handles GUESS events.
type GuessHandler struct {
	UseCases *UseCases
}

func (h *GuessHandler) Handle(event events.Event, client *connection.Client) error {
	switch len(event.Params) {
	case 0:
		return &ParametersMissingError{Names: []string{"answer", "bet"}}
	case 1:
		return &ParametersMissingError{Names: []string{"bet"}}
	}
	answerText, ok := event.Params[0].(string)
	if !ok {
		return &InvalidParameterError{Name: "answer", Expected: "string"}
	}
	betNumber, ok := event.Params[1].(float64)
	if !ok {
		return &InvalidParameterError{Name: "bet", Expected: "number"}
	}
	if err := h.UseCases.Guess(answerText, int(betNumber), event.Issuer); err != nil {
		return err
	}
	client.Send(events.SerializeConfirmation())
	return nil
}

// ChangeCardHandler handles CHANGE_CARD events.
type ChangeCardHandler struct {
	UseCases *UseCases
}

func (h *ChangeCardHandler) Handle(event events.Event, client *connection.Client) error {
	if err := h.UseCases.ChangeCard(event.Issuer); err != nil {
		return err
	}
	client.Send(events.SerializeConfirmation())
	return nil
}

// ReadyHandler handles READY events.
type ReadyHandler struct {
	UseCases *UseCases
}

func (h *ReadyHandler) Handle(event events.Event, client *connection.Client) error {
	if err := h.UseCases.Ready(event.Issuer); err != nil {
		return err
	}
	client.Send(events.SerializeConfirmation())
	return nil
}

// SubscribeHandler handles SUBSCRIBE events by adding the client to the
// broadcast listener set.
type SubscribeHandler struct {
	Broadcast *connection.Broadcast
}

func (h *SubscribeHandler) Handle(event events.Event, client *connection.Client) error {
	h.Broadcast.AddListener(client)
	client.Send(events.SerializeConfirmation())
	return nil
}

// ReadHandler handles READ events by replying with the current snapshot.
type ReadHandler struct {
	UseCases *UseCases
}

func (h *ReadHandler) Handle(event events.Event, client *connection.Client) error {
	client.Send(events.SerializeGameState(h.UseCases.GameState()))
	return nil
}
