package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(names ...string) (*PlayersPool, []*Player) {
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		players = append(players, NewPlayer(NewLobbyMember(name)))
	}
	return NewPlayersPool(players), players
}

func TestAnswersPoolRejectsSecondAnswer(t *testing.T) {
	pool, players := testPool("alice", "bob")
	answers := NewAnswersPool(pool)

	require.NoError(t, answers.Add(players[0], AnswerA))
	err := answers.Add(players[0], AnswerB)

	var alreadyAnswered *PlayerAlreadyAnsweredError
	require.ErrorAs(t, err, &alreadyAnswered)
	assert.Equal(t, players[0].GUID, alreadyAnswered.PlayerGUID)
	assert.Equal(t, AnswerA, answers.Get(players[0]))
}

func TestAnswersPoolDefaultsToNoAnswer(t *testing.T) {
	pool, players := testPool("alice")
	answers := NewAnswersPool(pool)

	assert.Equal(t, NoAnswer, answers.Get(players[0]))
}

func TestAnswersPoolAllPlayersAnswered(t *testing.T) {
	pool, players := testPool("alice", "bob")
	answers := NewAnswersPool(pool)

	require.NoError(t, answers.Add(players[0], AnswerA))
	assert.False(t, answers.AllPlayersAnswered())

	require.NoError(t, answers.Add(players[1], AnswerC))
	assert.True(t, answers.AllPlayersAnswered())
}

func TestAnswersPoolFlushForgetsEverything(t *testing.T) {
	pool, players := testPool("alice")
	answers := NewAnswersPool(pool)
	require.NoError(t, answers.Add(players[0], AnswerA))

	answers.Flush()

	assert.Equal(t, NoAnswer, answers.Get(players[0]))
	assert.False(t, answers.AllPlayersAnswered())
	assert.NoError(t, answers.Add(players[0], AnswerB))
}

func TestBetPoolRejectsBetsOutsideBounds(t *testing.T) {
	pool, players := testPool("alice")
	bets := NewBetPool(pool)

	for _, bet := range []int{-1, 0, MaxBet + 1} {
		err := bets.Add(players[0], bet)
		var invalid *InvalidBetValueError
		require.ErrorAs(t, err, &invalid, "bet %d", bet)
		assert.Equal(t, bet, invalid.Bet)
	}
	assert.Equal(t, 0, bets.Get(players[0]))
}

func TestBetPoolRejectsSecondBet(t *testing.T) {
	pool, players := testPool("alice")
	bets := NewBetPool(pool)

	require.NoError(t, bets.Add(players[0], MinBet))
	err := bets.Add(players[0], MaxBet)

	var alreadyBet *PlayerAlreadyBetError
	require.ErrorAs(t, err, &alreadyBet)
	assert.Equal(t, MinBet, bets.Get(players[0]))
}

func TestBetPoolAllPlayersBetAndFlush(t *testing.T) {
	pool, players := testPool("alice", "bob")
	bets := NewBetPool(pool)

	require.NoError(t, bets.Add(players[0], MinBet))
	require.NoError(t, bets.Add(players[1], MaxBet))
	assert.True(t, bets.AllPlayersBet())

	bets.Flush()

	assert.Equal(t, 0, bets.Get(players[0]))
	assert.False(t, bets.AllPlayersBet())
}

func TestPointsBankSeedsInitialPointsPerPlayer(t *testing.T) {
	pool, _ := testPool("alice", "bob", "carol")

	bank := NewPointsBank(pool)

	assert.Equal(t, 3*InitialPlayerPoints, bank.PointsLeft())
}

func TestPointsBankGiveAndTakeMovePointsBothWays(t *testing.T) {
	pool, players := testPool("alice")
	bank := NewPointsBank(pool)

	bank.Give(players[0], 2)
	assert.Equal(t, InitialPlayerPoints-2, bank.PointsLeft())
	assert.Equal(t, InitialPlayerPoints+2, players[0].Points())

	require.NoError(t, bank.Take(players[0], 5))
	assert.Equal(t, InitialPlayerPoints+3, bank.PointsLeft())
	assert.Equal(t, InitialPlayerPoints-3, players[0].Points())
}

func TestPointsBankTakeFailureLeavesBothSidesUntouched(t *testing.T) {
	pool, players := testPool("alice")
	bank := NewPointsBank(pool)

	err := bank.Take(players[0], InitialPlayerPoints+1)

	require.Error(t, err)
	assert.Equal(t, InitialPlayerPoints, bank.PointsLeft())
	assert.Equal(t, InitialPlayerPoints, players[0].Points())
}
