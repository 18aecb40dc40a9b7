package repository

import (
	"context"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// BranchRepository 门店数据访问接口
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	// GetDefault 返回默认门店（最早创建的生效门店），用于考勤屏懒创建
	GetDefault(ctx context.Context) (*model.Branch, error)
}

type branchRepo struct {
	db *gorm.DB
}

// NewBranchRepo 创建 BranchRepository 实例
func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) GetDefault(ctx context.Context) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
