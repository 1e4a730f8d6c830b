package domain

// PointsBank counts the points not currently held by any live player. It is
// seeded with InitialPlayerPoints per player at game start, on top of each
// player's own InitialPlayerPoints, so bank + sum of live player points stays
// at 2 * InitialPlayerPoints * initial player count.
type PointsBank struct {
	points int
}

// NewPointsBank seeds a bank for the given pool.
func NewPointsBank(players *PlayersPool) *PointsBank {
	return &PointsBank{points: InitialPlayerPoints * players.Count()}
}

// Give moves points from the bank to the player.
func (b *PointsBank) Give(player *Player, amount int) {
	b.points -= amount
	player.Give(amount)
}

// Take moves points from the player into the bank. The player side validates
// first; on failure neither side changes.
func (b *PointsBank) Take(player *Player, amount int) error {
	if err := player.Take(amount); err != nil {
		return err
	}
	b.points += amount
	return nil
}

// PointsLeft returns the points currently in the bank.
func (b *PointsBank) PointsLeft() int {
	return b.points
}
