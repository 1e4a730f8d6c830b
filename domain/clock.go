package domain

import "time"

// Clock yields the wall-clock timestamp stamped onto game state snapshots.
type Clock interface {
	Now() time.Time
}

// LocalClock reads the local system time.
type LocalClock struct{}

func (LocalClock) Now() time.Time {
	return time.Now()
}
