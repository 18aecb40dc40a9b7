package repository

import (
	"context"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// ShiftRepository 班次目录数据访问接口
type ShiftRepository interface {
	// ListActive 返回全部生效班次（每次导入加载一次作为目录快照）
	ListActive(ctx context.Context) ([]model.Shift, error)
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) ListActive(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&shifts).Error
	return shifts, err
}
