package mq

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channels published on after a successful write.
const (
	TopicEventCreated   = "event-created"
	TopicEventUpdated   = "event-updated"
	TopicBookingCreated = "booking-created"
	TopicBookingUpdated = "booking-updated"
)

// Index describes the entity a message is about.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	ItemID     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

// Emitter announces writes to whoever listens. Emit never fails the caller.
type Emitter interface {
	Emit(ctx context.Context, topic string, content Index)
}

// Nop drops every message; used when no broker is configured.
type Nop struct{}

func (Nop) Emit(context.Context, string, Index) {}

// Publisher is the part of a redis client the emitter needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisEmitter publishes JSON messages to Redis pub/sub channels.
type RedisEmitter struct {
	pub Publisher
	log *zap.Logger
}

func NewRedisEmitter(pub Publisher, log *zap.Logger) *RedisEmitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisEmitter{pub: pub, log: log}
}

func (e *RedisEmitter) Emit(ctx context.Context, topic string, content Index) {
	data, err := json.Marshal(content)
	if err != nil {
		e.log.Warn("marshal message", zap.String("topic", topic), zap.Error(err))
		return
	}

	// The write has already committed; a cancelled request must not drop the message.
	if err := e.pub.Publish(context.WithoutCancel(ctx), topic, data).Err(); err != nil {
		e.log.Warn("publish message", zap.String("topic", topic), zap.Error(err))
		return
	}
	e.log.Debug("message published", zap.String("topic", topic), zap.String("entity_id", content.EntityID))
}
