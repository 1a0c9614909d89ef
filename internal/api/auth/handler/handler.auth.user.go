// Package authhdl chứa các handler HTTP cho domain auth
package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/a-sakhautdinov/task-flow/internal/api/base/handler"
	"github.com/a-sakhautdinov/task-flow/internal/api/auth/dto"
	authsvc "github.com/a-sakhautdinov/task-flow/internal/api/auth/service"
	"github.com/a-sakhautdinov/task-flow/internal/common"
)

// UserHandler xử lý các request HTTP liên quan đến người dùng
type UserHandler struct {
	service *authsvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	service, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}
	return &UserHandler{service: service}, nil
}

// clientMeta lấy thông tin client từ request để ghi activity log
func clientMeta(c fiber.Ctx) authsvc.ClientMeta {
	return authsvc.ClientMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

// HandleRegister đăng ký tài khoản mới
// POST /api/v1/auth/register
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	input := new(dto.RegisterInput)
	if err := c.Bind().Body(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	user, err := h.service.Register(c.Context(), input, clientMeta(c))
	return basehdl.HandleCreatedResponse(c, user, err)
}

// HandleLogin đăng nhập và phát hành token
// POST /api/v1/auth/login
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	input := new(dto.LoginInput)
	if err := c.Bind().Body(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	result, err := h.service.Login(c.Context(), input, clientMeta(c))
	return basehdl.HandleResponse(c, result, err)
}

// HandleLogout đăng xuất phiên hiện tại
// POST /api/v1/auth/logout
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	userIDHex, _ := c.Locals("user_id").(string)
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return basehdl.HandleError(c, common.ErrTokenInvalid)
	}

	err = h.service.Logout(c.Context(), userID, clientMeta(c))
	return basehdl.HandleResponse(c, nil, err)
}

// HandlePasswordReset đặt lại mật khẩu
// POST /api/v1/auth/password-reset
func (h *UserHandler) HandlePasswordReset(c fiber.Ctx) error {
	input := new(dto.PasswordResetInput)
	if err := c.Bind().Body(input); err != nil {
		return basehdl.HandleError(c, common.ErrInvalidFormat)
	}

	err := h.service.ResetPassword(c.Context(), input, clientMeta(c))
	return basehdl.HandleResponse(c, nil, err)
}
