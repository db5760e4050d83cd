package live

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// change is the payload exchanged on the Redis channel.
type change struct {
	Origin string         `json:"origin"`
	Room   model.RoomType `json:"room"`
}

// RedisBridge relays local changes to other instances over Redis pub/sub
// and republishes theirs into the local hub.  With a nil client it only
// notifies the local hub.
type RedisBridge struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
	origin  string
	log     *zap.Logger
}

func NewRedisBridge(hub *Hub, rdb *redis.Client, channel string, log *zap.Logger) *RedisBridge {
	return &RedisBridge{hub: hub, rdb: rdb, channel: channel, origin: uuid.NewString(), log: log}
}

// Notify signals local subscribers at once and then tells the other
// instances.  Publish errors are logged; local clients are already served.
func (b *RedisBridge) Notify(ctx context.Context, room model.RoomType) {
	b.hub.Publish(room)
	if b.rdb == nil {
		return
	}
	payload, err := json.Marshal(change{Origin: b.origin, Room: room})
	if err != nil {
		b.log.Error("encode seat change", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.log.Warn("publish seat change to redis", zap.String("room", string(room)), zap.Error(err))
	}
}

// Run consumes the channel until ctx is done, resubscribing with backoff
// when the connection drops.
func (b *RedisBridge) Run(ctx context.Context) error {
	if b.rdb == nil {
		<-ctx.Done()
		return nil
	}
	backoff := time.Second
	for {
		err := b.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		b.log.Warn("redis seat channel closed; resubscribing", zap.Error(err), zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (b *RedisBridge) consume(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.log.Info("subscribed to seat changes", zap.String("channel", b.channel))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("subscription channel closed")
			}
			b.handle([]byte(m.Payload))
		}
	}
}

// handle republishes a remote change locally.  Own messages were already
// delivered by Notify and are skipped.
func (b *RedisBridge) handle(payload []byte) {
	var c change
	if err := json.Unmarshal(payload, &c); err != nil {
		b.log.Warn("drop malformed seat change", zap.Error(err))
		return
	}
	if c.Origin == b.origin || !c.Room.Valid() {
		return
	}
	b.hub.Publish(c.Room)
}
