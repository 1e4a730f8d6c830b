package domain

import "github.com/google/uuid"

// GameTable aggregates the player pool, the ledgers, the bank and the deck
// of a running game. It is the only object that mutates player points and
// that removes players from the pool.
type GameTable struct {
	GUID    string
	players *PlayersPool
	answers *AnswersPool
	bets    *BetPool
	bank    *PointsBank
	deck    *Deck
}

// NewGameTable creates a table over the given pool and deck.
func NewGameTable(players *PlayersPool, deck *Deck) *GameTable {
	return &GameTable{
		GUID:    uuid.NewString(),
		players: players,
		answers: NewAnswersPool(players),
		bets:    NewBetPool(players),
		bank:    NewPointsBank(players),
		deck:    deck,
	}
}

// ChangeCard advances the deck cursor by one.
func (t *GameTable) ChangeCard() {
	t.deck.AdvanceCard()
}

// PlaceBet records the player's bet in the bet ledger.
func (t *GameTable) PlaceBet(player *Player, bet int) error {
	return t.bets.Add(player, bet)
}

// AddAnswer records the player's answer in the answers ledger.
func (t *GameTable) AddAnswer(player *Player, answer Answer) error {
	return t.answers.Add(player, answer)
}

// Flush resets the answer and bet ledgers for a new round. The deck cursor
// is not touched here.
func (t *GameTable) Flush() {
	t.answers.Flush()
	t.bets.Flush()
}

// PlayerBet returns the player's recorded bet, 0 when absent.
func (t *GameTable) PlayerBet(player *Player) int {
	return t.bets.Get(player)
}

// PlayerAnswer returns the player's recorded answer, NoAnswer when absent.
func (t *GameTable) PlayerAnswer(player *Player) Answer {
	return t.answers.Get(player)
}

// ExecuteWin pays the player their recorded bet out of the bank.
func (t *GameTable) ExecuteWin(player *Player) {
	bet := t.bets.Get(player)
	t.bank.Give(player, bet)
}

// ExecuteLoss takes the player's recorded bet into the bank. A player left
// with zero points is kicked from the pool.
func (t *GameTable) ExecuteLoss(player *Player) error {
	bet := t.bets.Get(player)
	if err := t.bank.Take(player, bet); err != nil {
		return err
	}
	if !player.HasPoints() {
		t.players.Kick(player)
	}
	return nil
}

// PlayerAnswered reports whether the player submitted an answer this round.
func (t *GameTable) PlayerAnswered(player *Player) bool {
	return t.answers.Get(player) != NoAnswer
}

// PlayerHasBet reports whether the player placed a bet this round.
func (t *GameTable) PlayerHasBet(player *Player) bool {
	return t.bets.Get(player) != 0
}

// PlayerCanBet reports whether the player may still place the given bet.
func (t *GameTable) PlayerCanBet(player *Player, bet int) bool {
	if t.PlayerHasBet(player) {
		return false
	}
	return player.Points() >= bet
}

// AdvancePlayer rotates the pool by one, moving the answerer role.
func (t *GameTable) AdvancePlayer() {
	t.players.AdvancePlayer()
}

// ShuffleDeck reshuffles the whole deck.
func (t *GameTable) ShuffleDeck() {
	t.deck.Shuffle()
}

// CurrentCard returns the card at the deck cursor.
func (t *GameTable) CurrentCard() Card {
	return t.deck.CurrentCard()
}

// AllPlayersAnswered reports whether every pooled player answered this
// round.
func (t *GameTable) AllPlayersAnswered() bool {
	return t.answers.AllPlayersAnswered()
}

// PointsInBank returns the points currently held by the bank.
func (t *GameTable) PointsInBank() int {
	return t.bank.PointsLeft()
}

// CurrentPlayer returns the current answerer.
func (t *GameTable) CurrentPlayer() *Player {
	return t.players.CurrentPlayer()
}

// Players returns all pooled players in turn order.
func (t *GameTable) Players() []*Player {
	return t.players.AllPlayers()
}

// GuessingPlayers returns every pooled player except the current answerer,
// in pool order.
func (t *GameTable) GuessingPlayers() []*Player {
	return t.players.AllPlayers()[1:]
}

// InGamePlayersCount returns the number of players still in the game.
func (t *GameTable) InGamePlayersCount() int {
	return t.players.Count()
}
