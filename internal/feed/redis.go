package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisBroker shares a feed between server instances through Redis pub/sub.
// Changes published anywhere are relayed into a LocalBroker here.
type RedisBroker struct {
	client *redis.Client
	prefix string
	local  *LocalBroker
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisBroker subscribes to every room channel under prefix and starts relaying.
func NewRedisBroker(ctx context.Context, client *redis.Client, prefix string) (*RedisBroker, error) {
	pubsub := client.PSubscribe(ctx, prefix+"room:*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to room feed: %w", err)
	}
	b := &RedisBroker{
		client: client,
		prefix: prefix,
		local:  NewLocalBroker(),
		pubsub: pubsub,
		done:   make(chan struct{}),
	}
	go b.relay()
	return b, nil
}

func (b *RedisBroker) channel(roomID string) string {
	return b.prefix + "room:" + roomID
}

func (b *RedisBroker) relay() {
	defer close(b.done)
	log := logrus.WithField("component", "feed")
	for msg := range b.pubsub.Channel() {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			log.WithError(err).WithField("channel", msg.Channel).Warn("Discarding malformed feed message")
			continue
		}
		if change.RoomID == "" {
			change.RoomID = strings.TrimPrefix(msg.Channel, b.prefix+"room:")
		}
		_ = b.local.Publish(context.Background(), change)
	}
	log.Info("Redis feed relay stopped")
}

// Publish sends change to every instance, this one included.
func (b *RedisBroker) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode feed change: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(change.RoomID), payload).Err(); err != nil {
		return fmt.Errorf("publish feed change: %w", err)
	}
	return nil
}

// Subscribe registers a local subscriber for roomID.
func (b *RedisBroker) Subscribe(roomID string) *Subscription {
	return b.local.Subscribe(roomID)
}

// Close stops relaying and waits for the relay goroutine.
func (b *RedisBroker) Close() error {
	err := b.pubsub.Close()
	<-b.done
	return err
}
