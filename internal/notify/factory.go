package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
)

// New builds the dispatcher described by cfg.Notify.Drivers, wrapped in Async.
// The returned close func flushes brokers and waits for in-flight dispatches.
func New(ctx context.Context, cfg *config.Config, rdb redis.UniversalClient, logger hclog.Logger) (*Async, func(), error) {
	var (
		targets Multi
		closers []func() error
	)
	for _, driver := range cfg.Notify.Drivers {
		switch driver {
		case "log":
			targets = append(targets, NewLogDispatcher(logger.Named("log")))
		case "kafka":
			if cfg.Notify.KafkaBrokers == "" {
				return nil, nil, errors.New("notify driver kafka requires KAFKA_BROKERS")
			}
			k, err := NewKafkaDispatcher(cfg.Notify.KafkaBrokers, "pitchside", cfg.Notify.KafkaTopic, logger.Named("kafka"))
			if err != nil {
				return nil, nil, err
			}
			targets = append(targets, k)
			closers = append(closers, k.Close)
		case "redis":
			if rdb == nil {
				return nil, nil, errors.New("notify driver redis requires REDIS_URL")
			}
			targets = append(targets, NewRedisDispatcher(rdb, cfg.Notify.RedisChannel))
		case "sns":
			if cfg.Notify.SNSTopicARN == "" {
				return nil, nil, errors.New("notify driver sns requires SNS_TOPIC_ARN")
			}
			s, err := NewSNSDispatcher(ctx, cfg.Notify.AWSRegion, cfg.Notify.SNSTopicARN)
			if err != nil {
				return nil, nil, err
			}
			targets = append(targets, s)
		default:
			return nil, nil, fmt.Errorf("unknown notify driver: %s", driver)
		}
	}

	async := NewAsync(targets, logger, cfg.Notify.Timeout)
	closeFn := func() {
		async.Wait()
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("closing dispatcher", "error", err)
			}
		}
	}
	return async, closeFn, nil
}
