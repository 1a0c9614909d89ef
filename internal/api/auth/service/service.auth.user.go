// Package authsvc chứa business logic cho domain auth (user directory)
package authsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	auditdto "github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	auditmodels "github.com/a-sakhautdinov/task-flow/internal/api/audit/models"
	auditsvc "github.com/a-sakhautdinov/task-flow/internal/api/audit/service"
	basesvc "github.com/a-sakhautdinov/task-flow/internal/api/base/service"
	"github.com/a-sakhautdinov/task-flow/internal/api/auth/dto"
	"github.com/a-sakhautdinov/task-flow/internal/api/auth/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
	"github.com/a-sakhautdinov/task-flow/internal/utility"
)

// ClientMeta chứa thông tin client kèm theo mỗi request, dùng để ghi activity log
type ClientMeta struct {
	IPAddress string // Địa chỉ IP của client
	UserAgent string // User agent của client
}

// UserService xử lý nghiệp vụ người dùng: đăng ký, đăng nhập, đăng xuất,
// đặt lại mật khẩu. Mỗi thao tác thành công đều được ghi vào activity log.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	logService *auditsvc.LogService
}

// NewUserService tạo mới UserService từ collection đã đăng ký trong registry
func NewUserService() (*UserService, error) {
	userCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exists {
		return nil, fmt.Errorf("collection %s not registered", global.MongoDB_ColNames.Users)
	}

	logService, err := auditsvc.NewLogService()
	if err != nil {
		return nil, err
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCol),
		logService:           logService,
	}, nil
}

// Register tạo tài khoản mới và ghi log hành động register
func (s *UserService) Register(ctx context.Context, input *dto.RegisterInput, meta ClientMeta) (models.User, error) {
	var zero models.User

	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	// Email phải là duy nhất
	exists, err := s.DocumentExists(ctx, bson.M{"email": input.Email})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RoleMember,
		IsActive: true,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	s.writeActivityLog(ctx, created.ID, auditmodels.ActionRegister, meta)

	logger.GetAppLogger().WithField("email", created.Email).Info("User registered")
	return created, nil
}

// Login xác thực người dùng, phát hành JWT token và ghi log hành động login
func (s *UserService) Login(ctx context.Context, input *dto.LoginInput, meta ClientMeta) (*dto.LoginResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	user, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		// Email không tồn tại là 404, lỗi store giữ nguyên trạng
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Email hoặc mật khẩu không đúng", common.StatusUnauthorized, nil)
	}

	token, err := utility.CreateToken(global.ServerConfig.JwtSecret, user.ID.Hex(), user.Role)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil)
	}

	// Lưu token của phiên hiện tại
	updated, err := s.UpdateById(ctx, user.ID, map[string]interface{}{"token": token})
	if err != nil {
		return nil, err
	}

	s.writeActivityLog(ctx, user.ID, auditmodels.ActionLogin, meta)

	return &dto.LoginResponse{Token: token, User: updated}, nil
}

// Logout xóa token phiên hiện tại và ghi log hành động logout.
// Bản ghi logout được liên kết với lần login gần nhất để tính thời lượng phiên.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, meta ClientMeta) error {
	update := &basesvc.UpdateData{
		Unset: map[string]interface{}{"token": ""},
	}
	if _, err := s.UpdateById(ctx, userID, update); err != nil {
		return err
	}

	s.writeActivityLog(ctx, userID, auditmodels.ActionLogout, meta)
	return nil
}

// ResetPassword đặt lại mật khẩu theo email và ghi log hành động password_reset
func (s *UserService) ResetPassword(ctx context.Context, input *dto.PasswordResetInput, meta ClientMeta) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	user, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil)
	}

	// Đổi mật khẩu đồng thời thu hồi token phiên hiện tại
	update := &basesvc.UpdateData{
		Set:   map[string]interface{}{"password": string(hashed)},
		Unset: map[string]interface{}{"token": ""},
	}
	if _, err := s.UpdateById(ctx, user.ID, update); err != nil {
		return err
	}

	s.writeActivityLog(ctx, user.ID, auditmodels.ActionPasswordReset, meta)
	return nil
}

// writeActivityLog ghi bản ghi hoạt động cho một thao tác auth.
// Lỗi ghi log không làm hỏng thao tác chính, chỉ được ghi nhận vào error log.
func (s *UserService) writeActivityLog(ctx context.Context, userID primitive.ObjectID, action string, meta ClientMeta) {
	_, err := s.logService.CreateLog(ctx, &auditdto.CreateLogInput{
		UserID:    userID.Hex(),
		Action:    action,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("userId", userID.Hex()).
			WithField("action", action).
			Error("Failed to write activity log for auth operation")
	}
}
