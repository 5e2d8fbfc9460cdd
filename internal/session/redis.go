package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key prefix for all client session data
const keyPrefix = "deckbuilder"

func tokenKey(profile string) string {
	return fmt.Sprintf("%s:token:%s", keyPrefix, profile)
}

func tokenChannel(profile string) string {
	return fmt.Sprintf("%s:token-events:%s", keyPrefix, profile)
}

// tokenEvent is the pub/sub payload. Origin identifies the publishing
// store so that Watch can skip its own writes.
type tokenEvent struct {
	Origin string `json:"origin"`
	Token  string `json:"token"`
}

// RedisTokenStore keeps the token under a fixed Redis key and announces
// every change on a pub/sub channel so other processes can follow it
type RedisTokenStore struct {
	client  *redis.Client
	profile string
	origin  string
}

// NewRedisTokenStore creates a token store for profile
func NewRedisTokenStore(client *redis.Client, profile string) *RedisTokenStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisTokenStore{client: client, profile: profile, origin: uuid.NewString()}
}

// Ensure RedisTokenStore implements the interfaces
var (
	_ TokenStore = (*RedisTokenStore)(nil)
	_ ChangeFeed = (*RedisTokenStore)(nil)
)

func (r *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, tokenKey(r.profile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, token string) error {
	event, err := r.event(token)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tokenKey(r.profile), token, 0)
	pipe.Publish(ctx, tokenChannel(r.profile), event)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	event, err := r.event("")
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKey(r.profile))
	pipe.Publish(ctx, tokenChannel(r.profile), event)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisTokenStore) event(token string) (string, error) {
	data, err := json.Marshal(tokenEvent{Origin: r.origin, Token: token})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Watch subscribes to token change announcements for the profile. Changes
// written through this store and malformed payloads are not reported.
func (r *RedisTokenStore) Watch(ctx context.Context) (<-chan string, error) {
	sub := r.client.Subscribe(ctx, tokenChannel(r.profile))

	// Wait for the subscription to be confirmed so no publish is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event tokenEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				if event.Origin == r.origin {
					continue
				}
				select {
				case out <- event.Token:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
