package domain

import "fmt"

// InitialPlayerPoints is the number of points every player starts with.
const InitialPlayerPoints = 10

// Player is a lobby member frozen into a running game, carrying points.
// Players are equal when their GUIDs are equal. Points are only ever mutated
// through the PointsBank.
type Player struct {
	GUID   string
	Name   string
	points int
}

// NewPlayer derives a player from a lobby member with the initial points.
func NewPlayer(member LobbyMember) *Player {
	return &Player{
		GUID:   member.GUID,
		Name:   member.Name,
		points: InitialPlayerPoints,
	}
}

// Take removes points from the player. It validates first and fails without
// side effects when the balance would go negative.
func (p *Player) Take(count int) error {
	if p.points-count < 0 {
		return fmt.Errorf("tried to take %d points from player %s having %d points",
			count, p.GUID, p.points)
	}
	p.points -= count
	return nil
}

// Give adds points to the player.
func (p *Player) Give(count int) {
	p.points += count
}

// CanBet reports whether the player can afford a bet of the given size.
func (p *Player) CanBet(count int) bool {
	return p.points-count >= 0
}

// Points returns the player's current points.
func (p *Player) Points() int {
	return p.points
}

// HasPoints reports whether the player still holds any points.
func (p *Player) HasPoints() bool {
	return p.points > 0
}

// PlayersPool is a carousel of players in turn order. The player at the
// front is the current answerer.
type PlayersPool struct {
	players *Carousel[*Player]
}

// NewPlayersPool creates a pool preserving the given order.
func NewPlayersPool(players []*Player) *PlayersPool {
	return &PlayersPool{players: NewCarousel(players)}
}

// CurrentPlayer returns the player at the front of the carousel.
func (pp *PlayersPool) CurrentPlayer() *Player {
	return pp.players.Front()
}

// AdvancePlayer rotates the carousel by one, moving the turn to the next
// player.
func (pp *PlayersPool) AdvancePlayer() {
	pp.players.PopPush()
}

// Kick removes a player from the pool, preserving the relative order of the
// remaining players.
func (pp *PlayersPool) Kick(player *Player) {
	pp.players.Remove(func(p *Player) bool {
		return p.GUID == player.GUID
	})
}

// AllPlayers returns a snapshot of the players in carousel order.
func (pp *PlayersPool) AllPlayers() []*Player {
	return pp.players.Items()
}

// Count returns the number of players left in the pool.
func (pp *PlayersPool) Count() int {
	return pp.players.Len()
}
