package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"transport-report-be/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRepository keeps every report as a JSON element of one Redis list.
// RPUSH makes appends atomic, so concurrent writers never drop each other.
type RedisRepository struct {
	client *redis.Client
	key    string
	log    *zap.Logger
}

func NewRedisRepository(client *redis.Client, log *zap.Logger) *RedisRepository {
	return &RedisRepository{
		client: client,
		key:    ReportsKey,
		log:    log.With(zap.String("component", "redis_repository")),
	}
}

func (r *RedisRepository) Append(ctx context.Context, report models.IssueReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", report.ID, err)
	}
	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("push report %s: %w", report.ID, err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) ([]models.IssueReport, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}
	return decodeReports(raw, r.log), nil
}

func (r *RedisRepository) FindByID(ctx context.Context, id string) (models.IssueReport, error) {
	reports, err := r.List(ctx)
	if err != nil {
		return models.IssueReport{}, err
	}
	for _, report := range reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.IssueReport{}, ErrReportNotFound
}

// decodeReports skips elements that are not valid report JSON; the list
// may hold entries written by older clients.
func decodeReports(raw []string, log *zap.Logger) []models.IssueReport {
	reports := make([]models.IssueReport, 0, len(raw))
	for i, item := range raw {
		var report models.IssueReport
		if err := json.Unmarshal([]byte(item), &report); err != nil {
			log.Warn("skipping undecodable report", zap.Int("index", i), zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}
	return reports
}
