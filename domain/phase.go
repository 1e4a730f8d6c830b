package domain

// Phase is one state of the game state machine. Every operation returns the
// phase to continue with, which may be the receiver itself. Operations not
// legal in a phase fail with IllegalPlayerActionError and leave the table
// untouched.
type Phase interface {
	Answer(player *Player, answer Answer) (Phase, error)
	Guess(player *Player, guess Guess) (Phase, error)
	ChangeCard(player *Player) (Phase, error)
	MarkReady(player *Player) (Phase, error)
	State() GameState
	GameOver() bool
}

func illegal(player *Player, action ActionName, phase PhaseName) error {
	return &IllegalPlayerActionError{
		PlayerGUID: player.GUID,
		Action:     action,
		Phase:      phase,
	}
}

// AnswerPhase waits for the current answerer to secretly pick an answer. The
// answerer may swap the card once before answering.
type AnswerPhase struct {
	context     GameContext
	table       *GameTable
	clock       Clock
	cardChanged bool
}

// NewAnswerPhase starts the answer phase of a round.
func NewAnswerPhase(context GameContext, table *GameTable, clock Clock) *AnswerPhase {
	return &AnswerPhase{
		context: context,
		table:   table,
		clock:   clock,
	}
}

func (ph *AnswerPhase) Answer(player *Player, answer Answer) (Phase, error) {
	if err := ph.ensureCurrentPlayer(player, AnswerAction); err != nil {
		return nil, err
	}
	if err := ph.table.AddAnswer(player, answer); err != nil {
		return nil, err
	}
	return NewGuessPhase(ph.context, ph.table, ph.clock), nil
}

func (ph *AnswerPhase) Guess(player *Player, guess Guess) (Phase, error) {
	return nil, illegal(player, GuessAction, AnswerPhaseName)
}

func (ph *AnswerPhase) ChangeCard(player *Player) (Phase, error) {
	if err := ph.ensureCurrentPlayer(player, ChangeCardAction); err != nil {
		return nil, err
	}
	if ph.cardChanged {
		return nil, ErrCardAlreadyChanged
	}
	ph.table.ChangeCard()
	ph.cardChanged = true
	return ph, nil
}

func (ph *AnswerPhase) MarkReady(player *Player) (Phase, error) {
	return nil, illegal(player, MarkReadyAction, AnswerPhaseName)
}

func (ph *AnswerPhase) GameOver() bool {
	return false
}

func (ph *AnswerPhase) ensureCurrentPlayer(player *Player, action ActionName) error {
	if player.GUID != ph.table.CurrentPlayer().GUID {
		return &IllegalPlayerActionError{
			PlayerGUID: player.GUID,
			Action:     action,
			Phase:      AnswerPhaseName,
			Info:       "this is not the currently answering player",
		}
	}
	return nil
}

func (ph *AnswerPhase) State() GameState {
	states := make([]PlayerState, 0, ph.table.InGamePlayersCount())
	for _, player := range ph.table.Players() {
		states = append(states, PlayerState{
			GUID:            player.GUID,
			Name:            player.Name,
			Points:          player.Points(),
			AwaitedToAnswer: player.GUID == ph.table.CurrentPlayer().GUID && !ph.table.PlayerAnswered(player),
		})
	}
	return GameState{
		Time:         ph.clock.Now(),
		Phase:        AnswerPhaseName,
		PlayerStates: states,
		PointsInBank: ph.table.PointsInBank(),
		RoundNumber:  ph.context.RoundNumber,
		CurrentCard:  ph.table.CurrentCard(),
		CardChanged:  ph.cardChanged,
	}
}

// GuessPhase collects one guess with a wager from every player but the
// answerer. Once the last guesser submits, the round settles.
type GuessPhase struct {
	context GameContext
	table   *GameTable
	clock   Clock
}

// NewGuessPhase starts the guessing part of a round.
func NewGuessPhase(context GameContext, table *GameTable, clock Clock) *GuessPhase {
	return &GuessPhase{
		context: context,
		table:   table,
		clock:   clock,
	}
}

func (ph *GuessPhase) Answer(player *Player, answer Answer) (Phase, error) {
	return nil, illegal(player, AnswerAction, GuessPhaseName)
}

func (ph *GuessPhase) Guess(player *Player, guess Guess) (Phase, error) {
	if err := ph.ensureGuessingPlayer(player); err != nil {
		return nil, err
	}
	if err := ph.ensureBetPossible(player, guess.Bet); err != nil {
		return nil, err
	}

	if err := ph.table.AddAnswer(player, guess.Answer); err != nil {
		return nil, err
	}
	if err := ph.table.PlaceBet(player, guess.Bet); err != nil {
		return nil, err
	}

	if ph.table.AllPlayersAnswered() {
		return NewResultPhase(ph.context, ph.table, ph.clock)
	}
	return ph, nil
}

func (ph *GuessPhase) ChangeCard(player *Player) (Phase, error) {
	return nil, illegal(player, ChangeCardAction, GuessPhaseName)
}

func (ph *GuessPhase) MarkReady(player *Player) (Phase, error) {
	return nil, illegal(player, MarkReadyAction, GuessPhaseName)
}

func (ph *GuessPhase) GameOver() bool {
	return false
}

func (ph *GuessPhase) ensureGuessingPlayer(player *Player) error {
	if player.GUID == ph.table.CurrentPlayer().GUID {
		return &IllegalPlayerActionError{
			PlayerGUID: player.GUID,
			Action:     GuessAction,
			Phase:      GuessPhaseName,
			Info:       "the currently answering player may not guess",
		}
	}
	return nil
}

func (ph *GuessPhase) ensureBetPossible(player *Player, bet int) error {
	if ph.table.PlayerHasBet(player) {
		return &PlayerAlreadyBetError{PlayerGUID: player.GUID}
	}
	if bet < MinBet || bet > MaxBet {
		return &InvalidBetValueError{Bet: bet}
	}
	if !ph.table.PlayerCanBet(player, bet) {
		return &PlayerCannotAffordBetError{
			PlayerGUID: player.GUID,
			Bet:        bet,
			Points:     player.Points(),
		}
	}
	return nil
}

func (ph *GuessPhase) State() GameState {
	states := make([]PlayerState, 0, ph.table.InGamePlayersCount())
	for _, player := range ph.table.Players() {
		awaited := player.GUID != ph.table.CurrentPlayer().GUID && !ph.table.PlayerAnswered(player)
		states = append(states, PlayerState{
			GUID:           player.GUID,
			Name:           player.Name,
			Points:         player.Points(),
			AwaitedToGuess: awaited,
		})
	}
	return GameState{
		Time:         ph.clock.Now(),
		Phase:        GuessPhaseName,
		PlayerStates: states,
		PointsInBank: ph.table.PointsInBank(),
		RoundNumber:  ph.context.RoundNumber,
		CurrentCard:  ph.table.CurrentCard(),
	}
}

// ResultPhase settles all wagers on entry: correct guessers are paid their
// bet out of the bank, incorrect guessers pay theirs into it, and players
// left without points are kicked. It then waits for every remaining player
// to mark ready before the next round starts or the game ends.
type ResultPhase struct {
	context      GameContext
	table        *GameTable
	clock        Clock
	readyCount   int
	ready        map[string]bool
	pointChanges map[string]int
}

// NewResultPhase settles the round. An error here means the guess phase let
// an unaffordable bet through, which is a defect, not a player mistake.
func NewResultPhase(context GameContext, table *GameTable, clock Clock) (*ResultPhase, error) {
	ph := &ResultPhase{
		context:      context,
		table:        table,
		clock:        clock,
		ready:        make(map[string]bool),
		pointChanges: make(map[string]int),
	}
	if err := ph.settle(); err != nil {
		return nil, err
	}
	return ph, nil
}

func (ph *ResultPhase) settle() error {
	correctAnswer := ph.table.PlayerAnswer(ph.table.CurrentPlayer())
	for _, player := range ph.table.GuessingPlayers() {
		bet := ph.table.PlayerBet(player)
		if ph.table.PlayerAnswer(player) == correctAnswer {
			ph.table.ExecuteWin(player)
			ph.pointChanges[player.GUID] = bet
		} else {
			if err := ph.table.ExecuteLoss(player); err != nil {
				return err
			}
			ph.pointChanges[player.GUID] = -bet
		}
	}
	return nil
}

func (ph *ResultPhase) Answer(player *Player, answer Answer) (Phase, error) {
	return nil, illegal(player, AnswerAction, ResultPhaseName)
}

func (ph *ResultPhase) Guess(player *Player, guess Guess) (Phase, error) {
	return nil, illegal(player, GuessAction, ResultPhaseName)
}

func (ph *ResultPhase) ChangeCard(player *Player) (Phase, error) {
	return nil, illegal(player, ChangeCardAction, ResultPhaseName)
}

func (ph *ResultPhase) MarkReady(player *Player) (Phase, error) {
	if ph.ready[player.GUID] {
		return nil, &PlayerAlreadyMarkedAsReadyError{PlayerGUID: player.GUID}
	}
	ph.ready[player.GUID] = true
	ph.readyCount++

	if ph.readyCount == ph.table.InGamePlayersCount() {
		return ph.advance(), nil
	}
	return ph, nil
}

// advance ends the game when any end condition holds, otherwise prepares the
// table and starts the next round.
func (ph *ResultPhase) advance() Phase {
	if ph.gameEnds() {
		return NewGameOver(ph.context, ph.table, ph.clock)
	}
	ph.table.Flush()
	ph.table.ChangeCard()
	ph.table.AdvancePlayer()
	context := GameContext{
		RoundNumber: ph.context.RoundNumber + 1,
		MaxRounds:   ph.context.MaxRounds,
	}
	return NewAnswerPhase(context, ph.table, ph.clock)
}

func (ph *ResultPhase) gameEnds() bool {
	return ph.isLastRound() || ph.table.InGamePlayersCount() <= 1 || ph.table.PointsInBank() <= 0
}

func (ph *ResultPhase) isLastRound() bool {
	return ph.context.RoundNumber == ph.context.MaxRounds
}

func (ph *ResultPhase) GameOver() bool {
	return false
}

func (ph *ResultPhase) State() GameState {
	states := make([]PlayerState, 0, ph.table.InGamePlayersCount())
	for _, player := range ph.table.Players() {
		states = append(states, PlayerState{
			GUID:         player.GUID,
			Name:         player.Name,
			Points:       player.Points(),
			PointsChange: ph.pointChanges[player.GUID],
			Ready:        ph.ready[player.GUID],
		})
	}
	return GameState{
		Time:         ph.clock.Now(),
		Phase:        ResultPhaseName,
		PlayerStates: states,
		PointsInBank: ph.table.PointsInBank(),
		RoundNumber:  ph.context.RoundNumber,
		CurrentCard:  ph.table.CurrentCard(),
	}
}

// GameOverPhase is terminal: every action is rejected.
type GameOverPhase struct {
	context GameContext
	table   *GameTable
	clock   Clock
}

// NewGameOver enters the terminal phase.
func NewGameOver(context GameContext, table *GameTable, clock Clock) *GameOverPhase {
	return &GameOverPhase{
		context: context,
		table:   table,
		clock:   clock,
	}
}

func (ph *GameOverPhase) Answer(player *Player, answer Answer) (Phase, error) {
	return nil, illegal(player, AnswerAction, GameOverPhaseName)
}

func (ph *GameOverPhase) Guess(player *Player, guess Guess) (Phase, error) {
	return nil, illegal(player, GuessAction, GameOverPhaseName)
}

func (ph *GameOverPhase) ChangeCard(player *Player) (Phase, error) {
	return nil, illegal(player, ChangeCardAction, GameOverPhaseName)
}

func (ph *GameOverPhase) MarkReady(player *Player) (Phase, error) {
	return nil, illegal(player, MarkReadyAction, GameOverPhaseName)
}

func (ph *GameOverPhase) GameOver() bool {
	return true
}

func (ph *GameOverPhase) State() GameState {
	states := make([]PlayerState, 0, ph.table.InGamePlayersCount())
	for _, player := range ph.table.Players() {
		states = append(states, PlayerState{
			GUID:   player.GUID,
			Name:   player.Name,
			Points: player.Points(),
		})
	}
	return GameState{
		Time:         ph.clock.Now(),
		Phase:        GameOverPhaseName,
		PlayerStates: states,
		PointsInBank: ph.table.PointsInBank(),
		RoundNumber:  ph.context.RoundNumber,
		CurrentCard:  ph.table.CurrentCard(),
	}
}
