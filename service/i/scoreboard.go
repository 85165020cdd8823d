package i

import (
	"context"
)

// RunScore is one ranked scoreboard entry.
type RunScore struct {
	Member string
	Score  float64
}

// Scoreboard records finished run scores and serves ranked listings.
// Lower scores rank first.
type Scoreboard interface {
	// Record adds a member to the board with the given score and sets
	// expiration if necessary.
	Record(ctx context.Context, board string, score float64, member string) error

	// Top retrieves up to `amount` members with the lowest scores.
	Top(ctx context.Context, board string, amount int64) ([]RunScore, error)

	// Count returns the number of members on the board.
	Count(ctx context.Context, board string) int64
}
