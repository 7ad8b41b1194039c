package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-tailor/internal/shared/util"
)

// RedisRepo stores each client's entries in one hash, field = entry ID.
type RedisRepo struct {
	Client redis.UniversalClient
	Prefix string
}

// NewRedisRepo connects to redisURL and verifies it answers PING.
func NewRedisRepo(ctx context.Context, redisURL string) (*RedisRepo, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisRepo{Client: client, Prefix: "tracker"}, nil
}

// redisEntry is the stored JSON form of an Entry.
type redisEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *RedisRepo) key(clientID string) string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = "tracker"
	}
	return prefix + ":" + util.HashKey(clientID)
}

func (r *RedisRepo) Create(ctx context.Context, e Entry) error {
	payload, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return r.Client.HSet(ctx, r.key(e.ClientID), e.ID, payload).Err()
}

func (r *RedisRepo) Get(ctx context.Context, clientID, id string) (Entry, error) {
	raw, err := r.Client.HGet(ctx, r.key(clientID), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return decodeEntry(clientID, raw)
}

func (r *RedisRepo) List(ctx context.Context, clientID string) ([]Entry, error) {
	all, err := r.Client.HGetAll(ctx, r.key(clientID)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(all))
	for _, raw := range all {
		e, err := decodeEntry(clientID, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sortNewestFirst(entries)
	return entries, nil
}

func (r *RedisRepo) Update(ctx context.Context, e Entry) error {
	exists, err := r.Client.HExists(ctx, r.key(e.ClientID), e.ID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return r.Create(ctx, e)
}

func (r *RedisRepo) Delete(ctx context.Context, clientID, id string) error {
	n, err := r.Client.HDel(ctx, r.key(clientID), id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisRepo) Close() error {
	return r.Client.Close()
}

func encodeEntry(e Entry) (string, error) {
	b, err := json.Marshal(redisEntry{
		ID:        e.ID,
		Date:      e.Date,
		URL:       e.URL,
		Platform:  e.Platform,
		Company:   e.Company,
		Role:      e.Role,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("encode tracker entry: %w", err)
	}
	return string(b), nil
}

func decodeEntry(clientID, raw string) (Entry, error) {
	var re redisEntry
	if err := json.Unmarshal([]byte(raw), &re); err != nil {
		return Entry{}, fmt.Errorf("decode tracker entry: %w", err)
	}
	return Entry{
		ID:        re.ID,
		ClientID:  clientID,
		Date:      re.Date,
		URL:       re.URL,
		Platform:  re.Platform,
		Company:   re.Company,
		Role:      re.Role,
		Status:    re.Status,
		CreatedAt: re.CreatedAt,
		UpdatedAt: re.UpdatedAt,
	}, nil
}
