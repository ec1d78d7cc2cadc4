package cache

import (
	"context"
	"desafiabrasil/internal/model"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionGrace keeps a session readable for a while after its time limit
const sessionGrace = 15 * time.Minute

// ExamSessionCache keeps the exams a user has started but not finished
type ExamSessionCache interface {
	Set(ctx context.Context, session *model.ExamSession) error
	Get(ctx context.Context, userID, templateID string) (*model.ExamSession, error)
	Delete(ctx context.Context, userID, templateID string) error
}

type sessionCache struct {
	client *redis.Client
}

func NewExamSessionCache(client *redis.Client) ExamSessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) key(userID, templateID string) string {
	return fmt.Sprintf("exam:%s:u:%s:session", templateID, userID)
}

func (c *sessionCache) Set(ctx context.Context, session *model.ExamSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt) + sessionGrace
	if ttl <= 0 {
		ttl = sessionGrace
	}
	return c.client.Set(ctx, c.key(session.UserID, session.TemplateID), data, ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, userID, templateID string) (*model.ExamSession, error) {
	data, err := c.client.Get(ctx, c.key(userID, templateID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.ExamSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, userID, templateID string) error {
	return c.client.Del(ctx, c.key(userID, templateID)).Err()
}
