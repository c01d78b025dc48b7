package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"inmobiliaria_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	deliveryMaxRetry = 8
	deliveryTimeout  = 30 * time.Second
	// Completed tasks are kept briefly so duplicates of the same ref are dropped.
	deliveryRetention = 24 * time.Hour
)

// Client enqueues background work on Redis.
type Client struct {
	client *asynq.Client
	queue  string
}

// WebhookEnqueuer is the part of Client the webhook forwarder depends on.
type WebhookEnqueuer interface {
	EnqueueWebhookDelivery(ctx context.Context, payload WebhookDeliveryPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueWebhookDelivery schedules a delivery with retries. A delivery for
// the same kind and ref that is already queued is treated as success.
func (c *Client) EnqueueWebhookDelivery(ctx context.Context, payload WebhookDeliveryPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewWebhookDeliveryTask(payload)
	if err != nil {
		return err
	}

	opts := []asynq.Option{
		asynq.Queue(c.queue),
		asynq.MaxRetry(deliveryMaxRetry),
		asynq.Timeout(deliveryTimeout),
		asynq.Retention(deliveryRetention),
	}
	if payload.Ref != "" {
		opts = append(opts, asynq.TaskID(payload.Kind+":"+payload.Ref))
	}

	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if err == asynq.ErrTaskIDConflict {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if q := cfg.GetAsynqQueueName(); q != "" {
		return q
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		tlsConfig = opt.TLSConfig.Clone()
		tlsConfig.InsecureSkipVerify = tlsInsecure
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
