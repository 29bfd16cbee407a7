package redis

import (
	"fmt"

	"github.com/mcoot/othello/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "othello"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// summaryKey returns the Redis key for a GameSummary
func summaryKey(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// summaryIndexKey returns the Redis key for the ZSET of summaries scored by completion time
func summaryIndexKey() string {
	return fmt.Sprintf("%s:idx:summaries", keyPrefix)
}
