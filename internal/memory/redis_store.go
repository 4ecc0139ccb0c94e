package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis. Transcripts expire after the
// configured TTL; every append refreshes it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

func (r *RedisStore) transcriptKey(sessionID string) string {
	return fmt.Sprintf("support:session:%s", sessionID)
}

func (r *RedisStore) LoadTranscript(ctx context.Context, sessionID string) (*Transcript, error) {
	data, err := r.client.Get(ctx, r.transcriptKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now()
		return &Transcript{
			SessionID:    sessionID,
			Messages:     []Message{},
			StartedAt:    now,
			LastActivity: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	var transcript Transcript
	if err := json.Unmarshal([]byte(data), &transcript); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}

	return &transcript, nil
}

// AppendMessage is a load-modify-save; concurrent appends to one session
// must be serialized by the caller (Manager holds its session lock across
// the exchange).
func (r *RedisStore) AppendMessage(ctx context.Context, sessionID string, msg Message) error {
	transcript, err := r.LoadTranscript(ctx, sessionID)
	if err != nil {
		return err
	}

	transcript.Messages = append(transcript.Messages, msg)
	transcript.LastActivity = time.Now()
	if len(transcript.Messages) == 1 {
		transcript.StartedAt = msg.Timestamp
	}

	data, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	if err := r.client.Set(ctx, r.transcriptKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}

func (r *RedisStore) ClearTranscript(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.transcriptKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
