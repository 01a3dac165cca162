package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisDispatcher publishes events on a pub/sub channel.
type RedisDispatcher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisDispatcher(client redis.UniversalClient, channel string) *RedisDispatcher {
	return &RedisDispatcher{client: client, channel: channel}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, evt Event) error {
	payload, err := evt.Payload()
	if err != nil {
		return err
	}
	return d.client.Publish(ctx, d.channel, payload).Err()
}
