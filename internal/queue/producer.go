package queue

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"school-admin-api/internal/config"
	"school-admin-api/internal/model"
)

type Producer struct {
	client *redis.Client
	cfg    *config.Config
}

func NewProducer(redisClient *RedisClient, cfg *config.Config) *Producer {
	return &Producer{
		client: redisClient.Client(),
		cfg:    cfg,
	}
}

// EnqueueImportJob pushes a grade import onto the import queue. Consumers pop
// from the other end, so jobs are handled in arrival order.
func (p *Producer) EnqueueImportJob(ctx context.Context, job model.GradeImportJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.client.LPush(ctx, p.cfg.Redis.ImportQueue, data).Err()
}
