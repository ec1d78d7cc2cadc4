package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// GlobalBoard is the leaderboard of cumulative user scores
const GlobalBoard = "global"

// TemplateBoard names the best-score leaderboard of one exam template
func TemplateBoard(templateID string) string {
	return "template:" + templateID
}

// LeaderboardCache handles Redis ZSET operations for rankings
type LeaderboardCache interface {
	// SetScore stores the absolute score of a user on a board
	SetScore(ctx context.Context, board, userID string, score int) error
	// SetBest stores score only if it beats the user's current one
	SetBest(ctx context.Context, board, userID string, score int) error
	GetTop(ctx context.Context, board string, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, board, userID string) (int64, error)
	// Replace atomically swaps a board's contents
	Replace(ctx context.Context, board string, scores map[string]int) error
}

// LeaderboardEntry represents a single leaderboard entry
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(board string) string {
	return fmt.Sprintf("ranking:%s", board)
}

func (c *leaderboardCache) SetScore(ctx context.Context, board, userID string, score int) error {
	return c.client.ZAdd(ctx, c.key(board), redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
}

func (c *leaderboardCache) SetBest(ctx context.Context, board, userID string, score int) error {
	return c.client.ZAddArgs(ctx, c.key(board), redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(score), Member: userID}},
	}).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, board string, limit int) ([]LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(board), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = LeaderboardEntry{
			UserID: member,
			Score:  int(z.Score),
			Rank:   i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, board, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(board), userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *leaderboardCache) Replace(ctx context.Context, board string, scores map[string]int) error {
	key := c.key(board)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(scores) > 0 {
		members := make([]redis.Z, 0, len(scores))
		for userID, score := range scores {
			members = append(members, redis.Z{Score: float64(score), Member: userID})
		}
		pipe.ZAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
