package sessions

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
)

type sessionRedisRepository struct {
	client *redis.Client
}

func NewSessionRedisRepository(client *redis.Client) SessionRepository {
	return &sessionRedisRepository{client: client}
}

func sessionKey(sessionID string) string {
	return constvars.RedisSessionKeyPrefix + sessionID
}

func (r *sessionRedisRepository) Save(ctx context.Context, session *Session, expiry time.Duration) error {
	jsonValue, err := json.Marshal(session)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	if err := r.client.Set(ctx, sessionKey(session.SessionID), jsonValue, expiry).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *sessionRedisRepository) Find(ctx context.Context, sessionID string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, exceptions.ErrSessionNotFound(err)
	} else if err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}

	session := new(Session)
	if err := json.Unmarshal([]byte(data), session); err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return session, nil
}

func (r *sessionRedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}
