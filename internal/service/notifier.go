package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NotificationKind classifies user-facing outcome messages.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notifier is the one-way sink for user-facing outcome reporting. Sends are
// fire-and-forget; the engine never blocks on the sink and a failed send
// never affects the mutation that triggered it.
type Notifier interface {
	Notify(message string, kind NotificationKind)
}

// LogNotifier reports notifications through the structured log only. Used in
// development and tests.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(message string, kind NotificationKind) {
	n.logger.Info("notification", zap.String("kind", string(kind)), zap.String("message", message))
}

type notificationPayload struct {
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
}

// RedisNotifier publishes notifications to a Redis channel consumed by the
// presentation layer.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisNotifier constructs a RedisNotifier.
func NewRedisNotifier(client *redis.Client, channel string, logger *zap.Logger) *RedisNotifier {
	if channel == "" {
		channel = "planner:notifications"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNotifier{client: client, channel: channel, logger: logger}
}

// Notify implements Notifier. The publish happens on its own goroutine with
// a short timeout; failures are logged and dropped.
func (n *RedisNotifier) Notify(message string, kind NotificationKind) {
	payload, err := json.Marshal(notificationPayload{Message: message, Kind: string(kind), At: time.Now().UTC()})
	if err != nil {
		n.logger.Warn("encode notification", zap.Error(err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
			n.logger.Warn("publish notification", zap.Error(err), zap.String("channel", n.channel))
		}
	}()
}
