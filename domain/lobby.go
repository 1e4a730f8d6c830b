package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// LobbyMember is a person waiting in a lobby, identified by a GUID.
type LobbyMember struct {
	GUID string
	Name string
}

// NewLobbyMember creates a member with a fresh GUID.
func NewLobbyMember(name string) LobbyMember {
	return LobbyMember{
		GUID: uuid.NewString(),
		Name: name,
	}
}

// GameSettings holds the pre-game choices frozen into a game at start.
type GameSettings struct {
	Deck            *Deck
	MaxRoundsFactor int
}

// Lobby groups members with settings before a game starts. Member order is
// insertion order and becomes the turn order of the game.
type Lobby struct {
	GUID     string
	Host     LobbyMember
	members  []LobbyMember
	settings GameSettings
}

// NewLobby creates a lobby with the host as its first member.
func NewLobby(host LobbyMember, settings GameSettings) *Lobby {
	return &Lobby{
		GUID:     uuid.NewString(),
		Host:     host,
		members:  []LobbyMember{host},
		settings: settings,
	}
}

// AddMember appends a member to the lobby. Adding a member twice is a no-op.
func (l *Lobby) AddMember(member LobbyMember) {
	for _, m := range l.members {
		if m.GUID == member.GUID {
			return
		}
	}
	l.members = append(l.members, member)
}

// RemoveMember removes a member by GUID.
func (l *Lobby) RemoveMember(guid string) error {
	for i, m := range l.members {
		if m.GUID == guid {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no member %s in lobby %s", guid, l.GUID)
}

// ChangeDeck swaps the deck the game will be played with.
func (l *Lobby) ChangeDeck(deck *Deck) {
	l.settings.Deck = deck
}

// Members returns the members in insertion order.
func (l *Lobby) Members() []LobbyMember {
	members := make([]LobbyMember, len(l.members))
	copy(members, l.members)
	return members
}

// MembersCount returns the number of members in the lobby.
func (l *Lobby) MembersCount() int {
	return len(l.members)
}

// Deck returns the chosen deck.
func (l *Lobby) Deck() *Deck {
	return l.settings.Deck
}

// MaxRounds is the round cap of the game: the rounds factor times the member
// count, frozen at game start.
func (l *Lobby) MaxRounds() int {
	return l.settings.MaxRoundsFactor * len(l.members)
}
