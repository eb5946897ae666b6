package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/rueidis"
)

// RedisNotifier publishes each notification as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  rueidis.Client
	channel string
}

func NewRedisNotifier(client rueidis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("[notify] encode failed: %v", err)
		return
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(string(payload)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		log.Printf("[notify] publish to %s failed: %v", r.channel, err)
	}
}
