package usecase

import (
	"context"
	"encoding/json"
	"time"

	"banking-service/internal/domain"
	"banking-service/internal/repository"
	"banking-service/pkg/xerrors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardStatsKey = "reports:dashboard_stats"
	dashboardStatsTTL = 30 * time.Second
)

// ReportService serves the read-only aggregates. Dashboard stats are cached
// briefly in Redis since the landing page polls them.
type ReportService struct {
	reports *repository.ReportRepository
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewReportService(reports *repository.ReportRepository, rdb *redis.Client, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, rdb: rdb, logger: logger}
}

func (s *ReportService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardStatsKey).Bytes(); err == nil {
			var stats domain.DashboardStats
			if json.Unmarshal(cached, &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.reports.DashboardStats(ctx)
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.Error(err))
		return nil, xerrors.ErrStore
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, dashboardStatsKey, payload, dashboardStatsTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *ReportService) AccountSummaries(ctx context.Context) ([]*domain.AccountSummary, error) {
	out, err := s.reports.AccountSummaries(ctx)
	if err != nil {
		s.logger.Error("account summary failed", zap.Error(err))
		return nil, xerrors.ErrStore
	}
	return out, nil
}

func (s *ReportService) DailySummaries(ctx context.Context) ([]*domain.DailySummary, error) {
	out, err := s.reports.DailySummaries(ctx)
	if err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
		return nil, xerrors.ErrStore
	}
	return out, nil
}
