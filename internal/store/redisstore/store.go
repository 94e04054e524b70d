package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"banking-client/internal/errs"
	"banking-client/internal/models/history"
)

const (
	defaultPrefix   = "bankcli:v1:"
	entryKeyPart    = "history:entry:"
	idemKeyPart     = "history:idem:"
	historyIndexKey = "history:index"
)

// Store keeps the session under a key prefix so several clients can share a
// redis instance.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &Store{client: client, prefix: prefix}
}

// NewClient configures a redis client from a URL and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get '%s': %w", key, err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set '%s': %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.prefix+k)
	}

	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

func (s *Store) AddEntry(ctx context.Context, entry history.Entry) error {
	reserved, err := s.client.SetNX(ctx, s.prefix+idemKeyPart+entry.IdempotencyKey, entry.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("redis reserve idempotency key: %w", err)
	}

	if !reserved {
		return errs.ErrDuplicateEntry
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+entryKeyPart+entry.ID, payload, 0)
		pipe.ZAdd(ctx, s.prefix+historyIndexKey, redis.Z{
			Score:  float64(entry.CreatedAt.UnixNano()),
			Member: entry.ID,
		})
		return nil
	})
	if err != nil {
		s.client.Del(ctx, s.prefix+idemKeyPart+entry.IdempotencyKey)
		return fmt.Errorf("redis add history entry: %w", err)
	}

	return nil
}

func (s *Store) UpdateEntryStatus(ctx context.Context, id string, status history.Status, message string) error {
	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}

	entry.Status = status
	entry.Message = message

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+entryKeyPart+id, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis update history entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, kind history.Kind) ([]history.Entry, error) {
	result := make([]history.Entry, 0)

	ids, err := s.client.ZRange(ctx, s.prefix+historyIndexKey, 0, -1).Result()
	if err != nil {
		return result, fmt.Errorf("redis list history: %w", err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.prefix+entryKeyPart+id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return result, fmt.Errorf("redis load history: %w", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var entry history.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return result, fmt.Errorf("decode history entry: %w", err)
		}

		if kind != "" && entry.Kind != kind {
			continue
		}

		result = append(result, entry)
	}

	return result, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) getEntry(ctx context.Context, id string) (history.Entry, error) {
	var entry history.Entry

	raw, err := s.client.Get(ctx, s.prefix+entryKeyPart+id).Result()
	if errors.Is(err, redis.Nil) {
		return entry, fmt.Errorf("entry '%s' - %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return entry, fmt.Errorf("redis get history entry: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return entry, fmt.Errorf("decode history entry: %w", err)
	}

	return entry, nil
}
