package signaling

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisTransport implements Transport over Redis Pub/Sub.
//
// Redis Pub/Sub is at-most-once by nature: subscribers that are offline when
// a message is published never see it, which matches the signaling contract.
type RedisTransport struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewRedisTransport(rdb *redis.Client, log *slog.Logger) *RedisTransport {
	if log == nil {
		log = slog.Default()
	}
	return &RedisTransport{rdb: rdb, log: log}
}

func (t *RedisTransport) Publish(ctx context.Context, topic string, env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return t.rdb.Publish(ctx, topic, b).Err()
}

func (t *RedisTransport) Subscribe(ctx context.Context, topic string, h Handler) (Subscription, error) {
	ps := t.rdb.Subscribe(ctx, topic)
	// Force the SUBSCRIBE round trip so a failed subscription surfaces here,
	// not on the first missed message.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	go func() {
		for msg := range ps.Channel() {
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				t.log.Warn("signaling: dropping malformed envelope", "topic", topic, "err", err)
				continue
			}
			if !env.Kind.Valid() {
				t.log.Warn("signaling: dropping unknown kind", "topic", topic, "kind", string(env.Kind))
				continue
			}
			h(env)
		}
	}()

	return &redisSubscription{ps: ps}, nil
}

type redisSubscription struct {
	ps *redis.PubSub
}

func (s *redisSubscription) Close() error { return s.ps.Close() }
