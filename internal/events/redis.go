package events

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisPublisher fans events out on a Redis pub/sub channel.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// DialRedis builds a client from a redis:// or rediss:// URL.
func DialRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if opt.TLSConfig != nil && opt.TLSConfig.MinVersion == 0 {
		opt.TLSConfig.MinVersion = tls.VersionTLS12
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 1 * time.Second
	opt.WriteTimeout = 1 * time.Second
	return redis.NewClient(opt), nil
}

// Publish sends the whole batch in one pipeline round trip.
func (p *RedisPublisher) Publish(ctx context.Context, batch []Event) error {
	if len(batch) == 0 {
		return nil
	}
	pipe := p.rdb.Pipeline()
	for _, ev := range batch {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", ev.Type, err)
		}
		pipe.Publish(ctx, p.channel, payload)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
