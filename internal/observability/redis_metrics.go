package observability

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentRedisClient adds a command hook recording count, latency and
// keyspace hits for the session store client.
func InstrumentRedisClient(client redis.UniversalClient, logger *slog.Logger) {
	if client == nil {
		return
	}
	if logger == nil {
		logger = Logger()
	}
	hook, err := newRedisHook(otel.Meter(meterName))
	if err != nil {
		logger.Warn("redis instrumentation disabled", "error", err)
		return
	}
	client.AddHook(hook)
}

type redisHook struct {
	commands metric.Int64Counter
	latency  metric.Float64Histogram
	keyspace metric.Int64Counter
}

func newRedisHook(meter metric.Meter) (*redisHook, error) {
	commands, err := meter.Int64Counter("redis.command.total",
		metric.WithDescription("Redis commands executed by status"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("redis.command.duration",
		metric.WithUnit("s"), metric.WithDescription("Redis command latency"))
	if err != nil {
		return nil, err
	}
	keyspace, err := meter.Int64Counter("redis.keyspace.lookups",
		metric.WithDescription("Redis read lookups by hit or miss"))
	if err != nil {
		return nil, err
	}
	return &redisHook{commands: commands, latency: latency, keyspace: keyspace}, nil
}

func (h *redisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *redisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.observe(ctx, cmd, time.Since(start))
		return err
	}
}

func (h *redisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)
		for _, cmd := range cmds {
			h.observe(ctx, cmd, elapsed)
		}
		return err
	}
}

func (h *redisHook) observe(ctx context.Context, cmd redis.Cmder, elapsed time.Duration) {
	name := strings.ToLower(cmd.Name())
	status := redisStatus(cmd.Err())
	attrs := metric.WithAttributes(attribute.String("command", name), attribute.String("status", status))
	h.commands.Add(ctx, 1, attrs)
	h.latency.Record(ctx, elapsed.Seconds(), attrs)

	switch name {
	case "get", "getex", "exists":
		if status == "error" {
			return
		}
		outcome := "hit"
		if status == "miss" || isZeroExists(cmd) {
			outcome = "miss"
		}
		h.keyspace.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func redisStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, redis.Nil):
		return "miss"
	default:
		return "error"
	}
}

func isZeroExists(cmd redis.Cmder) bool {
	ic, ok := cmd.(*redis.IntCmd)
	return ok && strings.EqualFold(cmd.Name(), "exists") && ic.Val() == 0
}
