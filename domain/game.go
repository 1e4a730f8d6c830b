package domain

import "github.com/google/uuid"

// GameObserver is called with a fresh snapshot after every successful state
// change, including game construction. It runs synchronously on the mutating
// goroutine, so snapshots arrive in causal order.
type GameObserver func(GameState)

// Game is the façade over the phase state machine. Callers act on players by
// reference and get an error back when the action is not legal right now.
// Game is not safe for concurrent use; the caller serializes access.
type Game struct {
	GUID     string
	table    *GameTable
	phase    Phase
	clock    Clock
	observer GameObserver
}

// NewGame freezes a lobby into a running game. The member order becomes the
// turn order, the deck is shuffled, and the observer receives the initial
// answer phase snapshot.
func NewGame(lobby *Lobby, clock Clock, observer GameObserver) *Game {
	members := lobby.Members()
	players := make([]*Player, 0, len(members))
	for _, member := range members {
		players = append(players, NewPlayer(member))
	}

	table := NewGameTable(NewPlayersPool(players), lobby.Deck())
	table.ShuffleDeck()

	context := GameContext{
		RoundNumber: 1,
		MaxRounds:   lobby.MaxRounds(),
	}

	g := &Game{
		GUID:     uuid.NewString(),
		table:    table,
		phase:    NewAnswerPhase(context, table, clock),
		clock:    clock,
		observer: observer,
	}
	g.notify()
	return g
}

// Answer submits the current answerer's secret answer.
func (g *Game) Answer(player *Player, answer Answer) error {
	phase, err := g.phase.Answer(player, answer)
	if err != nil {
		return err
	}
	g.transition(phase)
	return nil
}

// Guess submits a guessing player's prediction with a wager.
func (g *Game) Guess(player *Player, guess Guess) error {
	phase, err := g.phase.Guess(player, guess)
	if err != nil {
		return err
	}
	g.transition(phase)
	return nil
}

// ChangeCard swaps the current card for the next one in the deck. Legal once
// per answer phase, for the answerer only. The deck is reshuffled afterwards
// so a swapped-away card may still come back later.
func (g *Game) ChangeCard(player *Player) error {
	phase, err := g.phase.ChangeCard(player)
	if err != nil {
		return err
	}
	g.table.ShuffleDeck()
	g.transition(phase)
	return nil
}

// MarkReady records that the player saw the round result.
func (g *Game) MarkReady(player *Player) error {
	phase, err := g.phase.MarkReady(player)
	if err != nil {
		return err
	}
	g.transition(phase)
	return nil
}

func (g *Game) transition(phase Phase) {
	g.phase = phase
	g.notify()
}

func (g *Game) notify() {
	if g.observer != nil {
		g.observer(g.phase.State())
	}
}

// State returns a snapshot of the current phase.
func (g *Game) State() GameState {
	return g.phase.State()
}

// Over reports whether the game reached the terminal phase.
func (g *Game) Over() bool {
	return g.phase.GameOver()
}

// Players returns the pooled players in turn order.
func (g *Game) Players() []*Player {
	return g.table.Players()
}

// Player resolves a pooled player by GUID, nil when absent or kicked.
func (g *Game) Player(guid string) *Player {
	for _, player := range g.table.Players() {
		if player.GUID == guid {
			return player
		}
	}
	return nil
}

// CurrentPlayer returns the current answerer.
func (g *Game) CurrentPlayer() *Player {
	return g.table.CurrentPlayer()
}

// GuessingPlayers returns every pooled player but the answerer.
func (g *Game) GuessingPlayers() []*Player {
	return g.table.GuessingPlayers()
}

// CurrentCard returns the card at the deck cursor.
func (g *Game) CurrentCard() Card {
	return g.table.CurrentCard()
}
