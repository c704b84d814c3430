package output

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-usage/internal/domain"
)

// RedisPublisher stores reports as JSON strings in Redis.
//
//	<prefix>:<TEAM>:<YEAR>     report JSON, expiring after ttl when ttl > 0
//	<prefix>:index:<YEAR>      set of teams with a report for that year
type RedisPublisher struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisPublisher returns a publisher writing through client.
func NewRedisPublisher(client redis.Cmdable, prefix string, ttl time.Duration, logger *slog.Logger) *RedisPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "redis_publisher"),
	}
}

// ReportKey returns the key holding a team's season report.
func (p *RedisPublisher) ReportKey(team string, year int) string {
	return fmt.Sprintf("%s:%s:%d", p.prefix, strings.ToUpper(strings.TrimSpace(team)), year)
}

// IndexKey returns the key of the set of teams published for year.
func (p *RedisPublisher) IndexKey(year int) string {
	return fmt.Sprintf("%s:index:%d", p.prefix, year)
}

// Publish writes the report and its index entry in one pipeline.
func (p *RedisPublisher) Publish(ctx context.Context, report domain.TeamUsageReport) (string, error) {
	data, err := EncodeReport(report)
	if err != nil {
		return "", err
	}

	key := p.ReportKey(report.Team, report.Year)
	pipe := p.client.Pipeline()
	pipe.Set(ctx, key, data, p.ttl)
	pipe.SAdd(ctx, p.IndexKey(report.Year), strings.ToUpper(report.Team))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("publish %s: %w", key, err)
	}

	p.logger.Debug("published report", "key", key, "ttl", p.ttl)
	return key, nil
}
