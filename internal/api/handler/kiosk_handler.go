package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"presence-hub/backend/internal/dto"
	"presence-hub/backend/internal/service"
	"presence-hub/backend/pkg/response"
)

// KioskHandler 考勤屏模块 HTTP 处理器
type KioskHandler struct {
	codeSvc service.AccessCodeService
}

// NewKioskHandler 创建 KioskHandler 实例
func NewKioskHandler(codeSvc service.AccessCodeService) *KioskHandler {
	return &KioskHandler{codeSvc: codeSvc}
}

// GetCurrentCode 考勤屏轮询当前码
// GET /api/v1/kiosks/:screen_id/code
//
// 考勤屏按固定间隔轮询；码仍在有效期内时返回同一个码，
// 过期后自动轮换并返回新码。首次轮询的屏会被懒创建。
func (h *KioskHandler) GetCurrentCode(c *gin.Context) {
	screenID := c.Param("screen_id")
	if screenID == "" {
		response.BadRequest(c, 10001, "screen_id 不能为空")
		return
	}

	kc, err := h.codeSvc.GetOrCreateForKiosk(c.Request.Context(), screenID)
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			response.NotFound(c, 30004, "门店不存在，无法注册考勤屏")
			return
		}
		response.InternalError(c)
		return
	}

	resp := dto.KioskCodeResponse{
		ScreenID:  screenID,
		CodeValue: kc.CodeValue,
		ExpiresAt: kc.ExpiresAt.Format(time.RFC3339),
	}
	if kc.Kiosk != nil && kc.Kiosk.Branch != nil {
		resp.BranchName = kc.Kiosk.Branch.Name
	}
	response.OK(c, resp)
}
