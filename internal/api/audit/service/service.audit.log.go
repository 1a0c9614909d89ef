// Package auditsvc chứa business logic cho domain audit:
// ghi activity log, truy vấn, thống kê và xóa bản ghi.
package auditsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	"github.com/a-sakhautdinov/task-flow/internal/api/audit/models"
	basemodels "github.com/a-sakhautdinov/task-flow/internal/api/base/models"
	basesvc "github.com/a-sakhautdinov/task-flow/internal/api/base/service"
	authmodels "github.com/a-sakhautdinov/task-flow/internal/api/auth/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
	"github.com/a-sakhautdinov/task-flow/internal/utility"
)

// Base service phải luôn phủ đủ contract chuẩn
var _ basesvc.BaseServiceMongo[models.ActivityLog] = (*basesvc.BaseServiceMongoImpl[models.ActivityLog])(nil)

// LogService xử lý nghiệp vụ activity log.
// Bản ghi log là immutable: chỉ có insert, query và delete, không có update.
type LogService struct {
	*basesvc.BaseServiceMongoImpl[models.ActivityLog]
	userService *basesvc.BaseServiceMongoImpl[authmodels.User] // Tra cứu user để snapshot username/email/role
}

// NewLogService tạo mới LogService từ các collection đã đăng ký trong registry
func NewLogService() (*LogService, error) {
	logCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.ActivityLogs)
	if !exists {
		return nil, fmt.Errorf("collection %s not registered", global.MongoDB_ColNames.ActivityLogs)
	}

	userCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exists {
		return nil, fmt.Errorf("collection %s not registered", global.MongoDB_ColNames.Users)
	}

	return &LogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ActivityLog](logCol),
		userService:          basesvc.NewBaseServiceMongo[authmodels.User](userCol),
	}, nil
}

// CreateLog ghi một bản ghi hoạt động mới.
// Thứ tự xử lý: validate input -> tra cứu user -> điền giá trị mặc định ->
// xử lý theo action (login set loginTime, logout liên kết phiên) -> insert.
func (s *LogService) CreateLog(ctx context.Context, input *dto.CreateLogInput) (models.ActivityLog, error) {
	var zero models.ActivityLog

	// Validate trước khi chạm tới database
	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	// Snapshot thông tin user tại thời điểm ghi log.
	// Log phải giữ nguyên username/role cũ kể cả khi user đổi tên sau này.
	user, err := s.userService.FindOneById(ctx, userID)
	if err != nil {
		// Chỉ map sang UserNotFound khi user thật sự không tồn tại;
		// lỗi store phải nổi lên nguyên trạng như lỗi hệ thống
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrUserNotFound
		}
		return zero, err
	}

	log := models.ActivityLog{
		UserID:    userID,
		Username:  user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Action:    input.Action,
		IPAddress: input.IPAddress,
		TokenName: input.TokenName,
		UserAgent: input.UserAgent,
	}

	// Giá trị mặc định khi client không gửi
	if log.TokenName == "" {
		log.TokenName = models.DefaultTokenName
	}
	if log.UserAgent == "" {
		log.UserAgent = models.DefaultUserAgent
	}

	now := utility.CurrentTimeInMilli()
	switch input.Action {
	case models.ActionLogin:
		log.LoginTime = &now
	case models.ActionLogout:
		log.LogoutTime = &now
		// Liên kết với phiên login gần nhất để tính thời lượng phiên.
		// Không tìm thấy login trước đó không phải là lỗi: bản ghi logout
		// vẫn được ghi, chỉ thiếu sessionDuration. Lỗi store khi lookup
		// thì ngược lại phải làm hỏng cả lần ghi.
		duration, found, err := s.resolveSessionDuration(ctx, userID, now)
		if err != nil {
			return zero, err
		}
		if found {
			log.SessionDuration = &duration
		}
	}

	created, err := s.InsertOne(ctx, log)
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("userId", input.UserID).
			WithField("action", input.Action).
			Error("Failed to insert activity log")
		return zero, err
	}

	logger.GetAuditLogger().
		WithField("userId", input.UserID).
		WithField("action", input.Action).
		WithField("ipAddress", input.IPAddress).
		Info("Activity log recorded")

	return created, nil
}

// buildSessionLinkageFilter dựng filter tìm các bản ghi login có loginTime
// của một user, dùng cho lookup liên kết phiên khi ghi logout
func buildSessionLinkageFilter(userID primitive.ObjectID) bson.M {
	return bson.M{
		"userId":    userID,
		"action":    models.ActionLogin,
		"loginTime": bson.M{"$ne": nil},
	}
}

// sessionLinkageSort sort theo loginTime giảm dần để bản ghi đầu tiên
// luôn là lần login gần nhất
func sessionLinkageSort() bson.D {
	return bson.D{{Key: "loginTime", Value: -1}}
}

// resolveSessionDuration tìm bản ghi login gần nhất của user và tính thời lượng phiên.
// Trả về (duration, true, nil) nếu tìm được, (0, false, nil) nếu user chưa có
// bản ghi login nào; lỗi store trong lúc lookup được trả về nguyên trạng.
// Lưu ý: lookup và insert không nằm trong transaction, hai logout đồng thời
// có thể cùng liên kết tới một bản ghi login.
func (s *LogService) resolveSessionDuration(ctx context.Context, userID primitive.ObjectID, logoutTime int64) (int64, bool, error) {
	opts := options.FindOne().SetSort(sessionLinkageSort())

	lastLogin, err := s.FindOne(ctx, buildSessionLinkageFilter(userID), opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if lastLogin.LoginTime == nil {
		return 0, false, nil
	}

	return sessionDurationBetween(*lastLogin.LoginTime, logoutTime), true, nil
}

// sessionDurationBetween tính thời lượng phiên giữa login và logout (milli giây).
// Clock skew có thể cho kết quả âm, clamp về 0.
func sessionDurationBetween(loginTime, logoutTime int64) int64 {
	duration := logoutTime - loginTime
	if duration < 0 {
		return 0
	}
	return duration
}

// DeleteLogById xóa một bản ghi theo ID.
// Trả về ErrNotFound nếu bản ghi không tồn tại.
func (s *LogService) DeleteLogById(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrInvalidFormat
	}

	if err := s.DeleteById(ctx, objectID); err != nil {
		return err
	}

	logger.GetAuditLogger().WithField("logId", id).Info("Activity log deleted")
	return nil
}

// DeleteLogsByIds xóa nhiều bản ghi theo danh sách ID.
// Danh sách rỗng là lỗi input; ID không tồn tại trong danh sách được bỏ qua,
// DeletedCount phản ánh số bản ghi xóa thực tế.
func (s *LogService) DeleteLogsByIds(ctx context.Context, input *dto.BulkDeleteInput) (*basemodels.DeleteResult, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	filter, err := buildBulkDeleteFilter(input.IDs)
	if err != nil {
		return nil, err
	}

	deleted, err := s.DeleteMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().
		WithField("requested", len(input.IDs)).
		WithField("deleted", deleted).
		Info("Activity logs bulk deleted")

	return &basemodels.DeleteResult{DeletedCount: deleted}, nil
}

// buildBulkDeleteFilter dựng filter $in từ danh sách ID hex.
// Mọi ID hợp lệ đều vào filter, kể cả ID không còn tồn tại trong store;
// số bản ghi xóa thực tế do store quyết định.
func buildBulkDeleteFilter(ids []string) (bson.M, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		objectIDs = append(objectIDs, objectID)
	}
	return bson.M{"_id": bson.M{"$in": objectIDs}}, nil
}
