package common

import "fmt"

const leaderboardKeyPrefix = "leaderboard"

func RedisKeyLeaderboard(page, limit int) string {
	return fmt.Sprintf("%s:%d:%d", leaderboardKeyPrefix, page, limit)
}

// RedisPatternLeaderboard matches every cached leaderboard page. A point
// change can move rank boundaries across many pages, so invalidation is
// always prefix-wide, never per page.
func RedisPatternLeaderboard() string {
	return leaderboardKeyPrefix + ":*"
}
