package service

import (
	"context"
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"fmt"
	"log"
)

// RankingService serves the global and per-template leaderboards
type RankingService struct {
	users       repository.UserRepo
	leaderboard cache.LeaderboardCache
	broadcaster Broadcaster
	size        int
}

// NewRankingService creates a new ranking service
func NewRankingService(users repository.UserRepo, leaderboard cache.LeaderboardCache, size int) *RankingService {
	if size <= 0 {
		size = 10
	}
	return &RankingService{
		users:       users,
		leaderboard: leaderboard,
		size:        size,
	}
}

// SetBroadcaster sets the broadcaster for live ranking pushes
func (s *RankingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Top returns the first limit entries of a board with user names filled in.
// The global board falls back to the user store when Redis is empty or down.
func (s *RankingService) Top(ctx context.Context, board string, limit int) ([]model.RankingEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = s.size
	}

	entries, err := s.leaderboard.GetTop(ctx, board, limit)
	if err != nil {
		log.Printf("Leaderboard %s read failed: %v", board, err)
	}
	if (err != nil || len(entries) == 0) && board == cache.GlobalBoard {
		return s.topFromStore(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	names := map[string]string{}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		log.Printf("Leaderboard %s: name lookup failed: %v", board, err)
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]model.RankingEntry, len(entries))
	for i, e := range entries {
		out[i] = model.RankingEntry{
			UserID: e.UserID,
			Name:   names[e.UserID],
			Score:  e.Score,
			Rank:   e.Rank,
		}
	}
	return out, nil
}

func (s *RankingService) topFromStore(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	users, err := s.users.TopByScore(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking: %w", err)
	}
	out := make([]model.RankingEntry, len(users))
	for i, u := range users {
		out[i] = model.RankingEntry{UserID: u.ID, Name: u.Name, Score: u.TotalScore, Rank: i + 1}
	}
	return out, nil
}

// Rank returns the 1-based position of userID on board, 0 when unranked
func (s *RankingService) Rank(ctx context.Context, board, userID string) (int, error) {
	rank, err := s.leaderboard.GetRank(ctx, board, userID)
	if err != nil {
		return 0, err
	}
	if rank < 0 {
		return 0, nil
	}
	return int(rank), nil
}

// Record stores a finished exam on the global and template boards and
// returns the user's global rank
func (s *RankingService) Record(ctx context.Context, userID, templateID string, totalScore, examScore int) int {
	if err := s.leaderboard.SetScore(ctx, cache.GlobalBoard, userID, totalScore); err != nil {
		log.Printf("Leaderboard update for user %s failed: %v", userID, err)
		return 0
	}
	if err := s.leaderboard.SetBest(ctx, cache.TemplateBoard(templateID), userID, examScore); err != nil {
		log.Printf("Template leaderboard %s update for user %s failed: %v", templateID, userID, err)
	}
	rank, err := s.Rank(ctx, cache.GlobalBoard, userID)
	if err != nil {
		log.Printf("Rank lookup for user %s failed: %v", userID, err)
	}
	return rank
}

// Rebuild reloads the global board from the user store
func (s *RankingService) Rebuild(ctx context.Context) (int, error) {
	users, err := s.users.TopByScore(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load users: %w", err)
	}
	scores := make(map[string]int, len(users))
	for _, u := range users {
		scores[u.ID] = u.TotalScore
	}
	if err := s.leaderboard.Replace(ctx, cache.GlobalBoard, scores); err != nil {
		return 0, fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	log.Printf("Global leaderboard rebuilt with %d users", len(scores))
	s.publish(ctx, MsgRankingRebuilt)
	return len(scores), nil
}

// Publish pushes the current global top to live subscribers
func (s *RankingService) Publish(ctx context.Context) {
	s.publish(ctx, MsgRankingUpdate)
}

func (s *RankingService) publish(ctx context.Context, msgType string) {
	if s.broadcaster == nil {
		return
	}
	top, err := s.Top(ctx, cache.GlobalBoard, s.size)
	if err != nil {
		log.Printf("Ranking publish skipped: %v", err)
		return
	}
	s.broadcaster.Publish(TopicRanking, msgType, top)
}
