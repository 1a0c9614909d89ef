// Package audithdl chứa các handler HTTP cho domain audit
package audithdl

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	auditsvc "github.com/a-sakhautdinov/task-flow/internal/api/audit/service"
	basehdl "github.com/a-sakhautdinov/task-flow/internal/api/base/handler"
	"github.com/a-sakhautdinov/task-flow/internal/common"
)

// AuditLogHandler xử lý các request HTTP liên quan đến activity log
type AuditLogHandler struct {
	service *auditsvc.LogService
}

// NewAuditLogHandler tạo mới AuditLogHandler
func NewAuditLogHandler() (*AuditLogHandler, error) {
	service, err := auditsvc.NewLogService()
	if err != nil {
		return nil, err
	}
	return &AuditLogHandler{service: service}, nil
}

// HandleCreateLog ghi một bản ghi hoạt động mới
// POST /api/v1/audit/logs
func (h *AuditLogHandler) HandleCreateLog(c fiber.Ctx) error {
	input := new(dto.CreateLogInput)
	if err := c.Bind().Body(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	// IP và user agent lấy từ request nếu client không gửi kèm
	if input.IPAddress == "" {
		input.IPAddress = c.IP()
	}
	if input.UserAgent == "" {
		input.UserAgent = c.Get("User-Agent")
	}

	created, err := h.service.CreateLog(c.Context(), input)
	return basehdl.HandleCreatedResponse(c, created, err)
}

// HandleQueryLogs truy vấn danh sách bản ghi với filter, sort và phân trang
// GET /api/v1/audit/logs
func (h *AuditLogHandler) HandleQueryLogs(c fiber.Ctx) error {
	input := new(dto.QueryLogInput)
	if err := c.Bind().Query(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	result, err := h.service.QueryLogs(c.Context(), input)
	return basehdl.HandleResponse(c, result, err)
}

// HandleListMyActivity trả về hoạt động gần nhất của chính người dùng đang đăng nhập
// GET /api/v1/audit/logs/me
func (h *AuditLogHandler) HandleListMyActivity(c fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return basehdl.HandleError(c, common.ErrTokenInvalid)
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	logs, err := h.service.ListUserActivity(c.Context(), userID, limit)
	return basehdl.HandleResponse(c, logs, err)
}

// HandleGetFilterOptions trả về các giá trị role/action hiện có cho dropdown filter
// GET /api/v1/audit/filters
func (h *AuditLogHandler) HandleGetFilterOptions(c fiber.Ctx) error {
	opts, err := h.service.GetFilterOptions(c.Context())
	return basehdl.HandleResponse(c, opts, err)
}

// HandleGetStats lấy thống kê hoạt động theo khoảng thời gian
// GET /api/v1/audit/stats
func (h *AuditLogHandler) HandleGetStats(c fiber.Ctx) error {
	input := new(dto.StatsInput)
	if err := c.Bind().Query(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	stats, err := h.service.GetStats(c.Context(), input.Period)
	return basehdl.HandleResponse(c, stats, err)
}

// HandleDeleteLog xóa một bản ghi theo ID
// DELETE /api/v1/audit/logs/:id
func (h *AuditLogHandler) HandleDeleteLog(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return basehdl.HandleError(c, common.ErrRequiredField)
	}

	err := h.service.DeleteLogById(c.Context(), id)
	return basehdl.HandleResponse(c, fiber.Map{"id": id}, err)
}

// HandleBulkDeleteLogs xóa nhiều bản ghi theo danh sách ID
// DELETE /api/v1/audit/logs
func (h *AuditLogHandler) HandleBulkDeleteLogs(c fiber.Ctx) error {
	input := new(dto.BulkDeleteInput)
	if err := c.Bind().Body(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	result, err := h.service.DeleteLogsByIds(c.Context(), input)
	return basehdl.HandleResponse(c, result, err)
}
