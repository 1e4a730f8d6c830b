package domain

// Answer is one of the three options on a card, or NoAnswer when a player
// has not submitted yet.
type Answer string

const (
	AnswerA  Answer = "A"
	AnswerB  Answer = "B"
	AnswerC  Answer = "C"
	NoAnswer Answer = "NO_ANSWER"
)

// Bet bounds. A stored bet of 0 means "not bet".
const (
	MinBet = 1
	MaxBet = 2
)

// AnswersPool records one answer per player per round.
type AnswersPool struct {
	players  *PlayersPool
	answered int
	answers  map[string]Answer
}

// NewAnswersPool creates an empty answers ledger over the given pool.
func NewAnswersPool(players *PlayersPool) *AnswersPool {
	return &AnswersPool{
		players: players,
		answers: make(map[string]Answer),
	}
}

// Add records the player's answer. A second submission is rejected.
func (ap *AnswersPool) Add(player *Player, answer Answer) error {
	if ap.Get(player) != NoAnswer {
		return &PlayerAlreadyAnsweredError{PlayerGUID: player.GUID}
	}
	ap.answers[player.GUID] = answer
	ap.answered++
	return nil
}

// Get returns the player's recorded answer, or NoAnswer when missing.
func (ap *AnswersPool) Get(player *Player) Answer {
	if answer, ok := ap.answers[player.GUID]; ok {
		return answer
	}
	return NoAnswer
}

// AllPlayersAnswered reports whether every player in the pool has answered.
func (ap *AnswersPool) AllPlayersAnswered() bool {
	return ap.answered == ap.players.Count()
}

// Flush resets the ledger for a new round.
func (ap *AnswersPool) Flush() {
	ap.answered = 0
	ap.answers = make(map[string]Answer)
}

// BetPool records one bet in [MinBet, MaxBet] per player per round.
type BetPool struct {
	players *PlayersPool
	betters int
	bets    map[string]int
}

// NewBetPool creates an empty bet ledger over the given pool.
func NewBetPool(players *PlayersPool) *BetPool {
	return &BetPool{
		players: players,
		bets:    make(map[string]int),
	}
}

// Add records the player's bet. A second bet or a bet outside the bounds is
// rejected.
func (bp *BetPool) Add(player *Player, bet int) error {
	if bp.Get(player) != 0 {
		return &PlayerAlreadyBetError{PlayerGUID: player.GUID}
	}
	if bet < MinBet || bet > MaxBet {
		return &InvalidBetValueError{Bet: bet}
	}
	bp.bets[player.GUID] = bet
	bp.betters++
	return nil
}

// Get returns the player's recorded bet, or 0 when the player has not bet.
func (bp *BetPool) Get(player *Player) int {
	return bp.bets[player.GUID]
}

// AllPlayersBet reports whether every player in the pool has bet.
func (bp *BetPool) AllPlayersBet() bool {
	return bp.betters == bp.players.Count()
}

// Flush resets the ledger for a new round.
func (bp *BetPool) Flush() {
	bp.betters = 0
	bp.bets = make(map[string]int)
}
