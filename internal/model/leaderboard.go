package model

// LeaderboardEntry is computed per request and never stored.
type LeaderboardEntry struct {
	UserID      string
	Name        string
	TotalPoints int64
	Rank        int
}
