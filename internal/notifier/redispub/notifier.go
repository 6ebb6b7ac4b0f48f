package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"botram-go/internal/config"
	"botram-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

// Notifier publishes customer notifications to a Redis channel from which
// delivery workers (push, in-app) fan out. Publishing is best-effort; the
// caller never rolls back on a failure here.
type Notifier struct {
	log     logger.Logger
	rdb     *goredis.Client
	channel string
}

type message struct {
	CustomerID  string    `json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SentAt      time.Time `json:"sent_at"`
}

func New(cfg config.RedisConfig, log logger.Logger) (*Notifier, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Notifier{
		log:     log.With("component", "redis_notifier"),
		rdb:     rdb,
		channel: cfg.Channel,
	}, nil
}

func (n *Notifier) Notify(ctx context.Context, customerID, title, description string) error {
	raw, err := json.Marshal(message{
		CustomerID:  customerID,
		Title:       title,
		Description: description,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := n.rdb.Publish(ctx, n.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (n *Notifier) Close() error {
	return n.rdb.Close()
}
