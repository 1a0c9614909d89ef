package auditsvc

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	"github.com/a-sakhautdinov/task-flow/internal/api/audit/models"
	basemodels "github.com/a-sakhautdinov/task-flow/internal/api/base/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
)

// Các trường được phép sort; sortBy ngoài danh sách này rơi về createdAt
var allowedSortFields = map[string]bool{
	"createdAt":       true,
	"username":        true,
	"action":          true,
	"role":            true,
	"ipAddress":       true,
	"loginTime":       true,
	"logoutTime":      true,
	"sessionDuration": true,
}

// QueryLogs truy vấn danh sách bản ghi hoạt động theo filter, sort và phân trang.
// Mọi điều kiện lọc được AND với nhau; page đánh số từ 1.
func (s *LogService) QueryLogs(ctx context.Context, input *dto.QueryLogInput) (*basemodels.PaginateResult[models.ActivityLog], error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	filter, err := buildLogFilter(input)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(buildLogSort(input.SortBy, input.SortOrder))

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := normalizeLimit(input.Limit)

	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// buildLogFilter dựng filter MongoDB từ query input.
// Giá trị rỗng hoặc sentinel "all" bỏ qua điều kiện tương ứng.
func buildLogFilter(input *dto.QueryLogInput) (bson.M, error) {
	filter := bson.M{}

	if input.UserID != "" && input.UserID != models.FilterAll {
		userID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		filter["userId"] = userID
	}

	if input.Role != "" && input.Role != models.FilterAll {
		filter["role"] = input.Role
	}

	if input.Action != "" && input.Action != models.FilterAll {
		filter["action"] = input.Action
	}

	// Tìm kiếm substring không phân biệt hoa thường trên username HOẶC ipAddress.
	// QuoteMeta để ký tự đặc biệt trong chuỗi tìm kiếm không bị hiểu là regex.
	if input.Search != "" {
		pattern := regexp.QuoteMeta(input.Search)
		filter["$or"] = bson.A{
			bson.M{"username": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"ipAddress": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	// Khoảng thời gian theo createdAt, hai đầu đều inclusive
	createdAt := bson.M{}
	if input.StartDate != "" {
		start, err := parseDateBound(input.StartDate, false)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		createdAt["$gte"] = start
	}
	if input.EndDate != "" {
		end, err := parseDateBound(input.EndDate, true)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		createdAt["$lte"] = end
	}
	if len(createdAt) > 0 {
		filter["createdAt"] = createdAt
	}

	return filter, nil
}

// buildLogSort dựng điều kiện sort, mặc định createdAt giảm dần (mới nhất trước)
func buildLogSort(sortBy, sortOrder string) bson.D {
	field := sortBy
	if !allowedSortFields[field] {
		field = "createdAt"
	}

	order := -1
	if sortOrder == "asc" {
		order = 1
	}

	return bson.D{{Key: field, Value: order}}
}

// normalizeLimit áp dụng limit mặc định và clamp về giới hạn tối đa.
// Limit quá lớn bị clamp thay vì từ chối để tránh client làm quá tải store.
func normalizeLimit(limit int64) int64 {
	defaultLimit := int64(50)
	maxLimit := int64(500)
	if global.ServerConfig != nil {
		if global.ServerConfig.AuditDefaultPageLimit > 0 {
			defaultLimit = global.ServerConfig.AuditDefaultPageLimit
		}
		if global.ServerConfig.AuditMaxPageLimit > 0 {
			maxLimit = global.ServerConfig.AuditMaxPageLimit
		}
	}

	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// ListUserActivity trả về các hoạt động gần nhất của một user, mới nhất trước.
// Dùng cho màn hình "hoạt động của tôi", không cần quyền admin.
func (s *LogService) ListUserActivity(ctx context.Context, userID string, limit int64) ([]models.ActivityLog, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(normalizeLimit(limit))

	return s.Find(ctx, bson.M{"userId": objectID}, opts)
}

// FilterOptions liệt kê các giá trị hiện có trong store cho dropdown filter của UI
type FilterOptions struct {
	Roles   []string `json:"roles"`   // Các role đang xuất hiện trong log
	Actions []string `json:"actions"` // Các action đang xuất hiện trong log
}

// GetFilterOptions lấy danh sách distinct role và action trong activity_logs
func (s *LogService) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	roles, err := s.Distinct(ctx, "role", nil)
	if err != nil {
		return nil, err
	}

	actions, err := s.Distinct(ctx, "action", nil)
	if err != nil {
		return nil, err
	}

	return &FilterOptions{
		Roles:   toStrings(roles),
		Actions: toStrings(actions),
	}, nil
}

// toStrings lọc các giá trị string từ kết quả Distinct
func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// parseDateBound parse một mốc thời gian từ query string sang unix milli.
// Chấp nhận RFC3339 hoặc dạng ngày YYYY-MM-DD; với dạng ngày,
// endOfDay=true đẩy mốc tới cuối ngày để endDate là inclusive.
func parseDateBound(value string, endOfDay bool) (int64, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UnixMilli(), nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, err
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}

	return t.UnixMilli(), nil
}
