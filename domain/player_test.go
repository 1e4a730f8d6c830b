package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStartsWithInitialPoints(t *testing.T) {
	player := NewPlayer(NewLobbyMember("alice"))

	assert.Equal(t, InitialPlayerPoints, player.Points())
	assert.True(t, player.HasPoints())
}

func TestPlayerTakeFailsWithoutSideEffectsWhenBalanceWouldGoNegative(t *testing.T) {
	player := NewPlayer(NewLobbyMember("alice"))

	err := player.Take(InitialPlayerPoints + 1)

	require.Error(t, err)
	assert.Equal(t, InitialPlayerPoints, player.Points())
}

func TestPlayerTakeToZeroLeavesNoPoints(t *testing.T) {
	player := NewPlayer(NewLobbyMember("alice"))

	require.NoError(t, player.Take(InitialPlayerPoints))

	assert.Equal(t, 0, player.Points())
	assert.False(t, player.HasPoints())
}

func TestPlayerCanBet(t *testing.T) {
	player := NewPlayer(NewLobbyMember("alice"))
	require.NoError(t, player.Take(InitialPlayerPoints - 1))

	assert.True(t, player.CanBet(1))
	assert.False(t, player.CanBet(2))
}

func TestPlayersPoolRotationMovesTheAnswererRole(t *testing.T) {
	alice := NewPlayer(NewLobbyMember("alice"))
	bob := NewPlayer(NewLobbyMember("bob"))
	carol := NewPlayer(NewLobbyMember("carol"))
	pool := NewPlayersPool([]*Player{alice, bob, carol})

	assert.Same(t, alice, pool.CurrentPlayer())
	pool.AdvancePlayer()
	assert.Same(t, bob, pool.CurrentPlayer())
	pool.AdvancePlayer()
	assert.Same(t, carol, pool.CurrentPlayer())
	pool.AdvancePlayer()
	assert.Same(t, alice, pool.CurrentPlayer())
}

func TestPlayersPoolKickPreservesRemainingOrder(t *testing.T) {
	alice := NewPlayer(NewLobbyMember("alice"))
	bob := NewPlayer(NewLobbyMember("bob"))
	carol := NewPlayer(NewLobbyMember("carol"))
	pool := NewPlayersPool([]*Player{alice, bob, carol})

	pool.Kick(bob)

	assert.Equal(t, 2, pool.Count())
	assert.Equal(t, []*Player{alice, carol}, pool.AllPlayers())
}

func TestLobbyMemberOrderBecomesTurnOrder(t *testing.T) {
	deck, err := NewDeck("trivia", testCards(3))
	require.NoError(t, err)

	host := NewLobbyMember("host")
	lobby := NewLobby(host, GameSettings{Deck: deck, MaxRoundsFactor: 2})
	lobby.AddMember(NewLobbyMember("bob"))
	lobby.AddMember(NewLobbyMember("carol"))

	members := lobby.Members()
	require.Len(t, members, 3)
	assert.Equal(t, host.GUID, members[0].GUID)
	assert.Equal(t, 6, lobby.MaxRounds())
}

func TestLobbyAddingAMemberTwiceIsANoop(t *testing.T) {
	deck, err := NewDeck("trivia", testCards(3))
	require.NoError(t, err)

	host := NewLobbyMember("host")
	lobby := NewLobby(host, GameSettings{Deck: deck, MaxRoundsFactor: 2})
	lobby.AddMember(host)

	assert.Equal(t, 1, lobby.MembersCount())
}

func TestLobbyRemoveUnknownMemberFails(t *testing.T) {
	deck, err := NewDeck("trivia", testCards(3))
	require.NoError(t, err)

	lobby := NewLobby(NewLobbyMember("host"), GameSettings{Deck: deck, MaxRoundsFactor: 2})

	assert.Error(t, lobby.RemoveMember("nope"))
}
