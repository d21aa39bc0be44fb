package queue

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"school-admin-api/internal/config"
	"school-admin-api/internal/logger"
)

const popTimeout = 5 * time.Second

type Consumer struct {
	client *redis.Client
	cfg    *config.Config
	log    zerolog.Logger
}

type MessageHandler func(ctx context.Context, data []byte) error

func NewConsumer(redisClient *RedisClient, cfg *config.Config) *Consumer {
	return &Consumer{
		client: redisClient.Client(),
		cfg:    cfg,
		log:    logger.Component("queue"),
	}
}

func (c *Consumer) ConsumeImportQueue(ctx context.Context, handler MessageHandler) error {
	c.log.Info().
		Str("queue", c.cfg.Redis.ImportQueue).
		Str("dlq", c.DeadLetterQueue()).
		Msg("Consuming import queue")
	return c.consume(ctx, c.cfg.Redis.ImportQueue, c.DeadLetterQueue(), handler)
}

// DeadLetterQueue names the list that receives messages the handler rejected.
func (c *Consumer) DeadLetterQueue() string {
	return c.cfg.Redis.ImportQueue + c.cfg.Redis.DLQSuffix
}

func (c *Consumer) consume(ctx context.Context, queueName, dlqName string, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			result, err := c.client.BRPop(ctx, popTimeout, queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.Error().Err(err).Str("queue", queueName).Msg("Failed to consume message")
				time.Sleep(time.Second)
				continue
			}

			if len(result) < 2 {
				continue
			}

			message := result[1]
			if err := handler(ctx, []byte(message)); err != nil {
				c.log.Error().Err(err).Str("queue", queueName).Msg("Failed to process message")
				// The message is already off the queue; park it even during shutdown.
				if dlqErr := c.client.LPush(context.WithoutCancel(ctx), dlqName, message).Err(); dlqErr != nil {
					c.log.Error().Err(dlqErr).Str("dlq", dlqName).Msg("Failed to move message to DLQ")
				}
			}
		}
	}
}
