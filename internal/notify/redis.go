package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:user:"

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisPublisher publishes notification envelopes to a per-user redis
// pub/sub channel. Socket gateways subscribe to the channel of each
// connected user and fan the event out to their live connections.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr string, password string) *RedisPublisher {
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
	}
}

// ChannelFor returns the pub/sub channel name carrying notifications for
// the given user identity.
func ChannelFor(userId string) string {
	return channelPrefix + userId
}

func (p *RedisPublisher) Publish(ctx context.Context, userId string, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, ChannelFor(userId), body).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
