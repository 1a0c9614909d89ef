// Package basehdl chứa các handler và helper dùng chung cho layer API
package basehdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
)

// JSONResponse là cấu trúc chuẩn cho mọi response trả về client
type JSONResponse struct {
	Code    string      `json:"code"`              // Mã trạng thái (SUCCESS hoặc mã lỗi chi tiết)
	Message string      `json:"message"`           // Thông báo cho client
	Data    interface{} `json:"data,omitempty"`    // Dữ liệu trả về
	Details interface{} `json:"details,omitempty"` // Chi tiết lỗi (nếu có)
}

// HandleResponse xử lý response chung cho tất cả các handler.
// Nếu err != nil thì trả về lỗi theo chuẩn common.Error, ngược lại trả về data với status 200.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(common.StatusOK).JSON(JSONResponse{
		Code:    "SUCCESS",
		Message: common.MsgSuccess,
		Data:    data,
	})
}

// HandleCreatedResponse trả về response với status 201 khi tạo mới thành công
func HandleCreatedResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(common.StatusCreated).JSON(JSONResponse{
		Code:    "SUCCESS",
		Message: common.MsgCreated,
		Data:    data,
	})
}

// HandleError chuyển đổi error thành JSON response với status code phù hợp.
// common.Error giữ nguyên code/message/status, các lỗi khác trả về 500 chung chung
// để không lộ chi tiết nội bộ ra client.
func HandleError(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		// Lỗi 5xx ghi vào error log để truy vết
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.GetErrorLogger().WithError(err).
				WithField("path", c.Path()).
				WithField("code", customErr.Code.Code).
				Error("Internal error while handling request")
		}
		return c.Status(customErr.StatusCode).JSON(JSONResponse{
			Code:    customErr.Code.Code,
			Message: customErr.Message,
			Details: customErr.Details,
		})
	}

	logger.GetErrorLogger().WithError(err).
		WithField("path", c.Path()).
		Error("Unhandled error while handling request")

	return c.Status(common.StatusInternalServerError).JSON(JSONResponse{
		Code:    common.ErrCodeInternalServer.Code,
		Message: common.MsgInternalError,
	})
}
