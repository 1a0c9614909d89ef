package auditsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	"github.com/a-sakhautdinov/task-flow/internal/api/audit/models"
	basesvc "github.com/a-sakhautdinov/task-flow/internal/api/base/service"
	authmodels "github.com/a-sakhautdinov/task-flow/internal/api/auth/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
)

// newUnreachableLogService tạo LogService trỏ tới một MongoDB không tồn tại
// với server selection timeout ngắn, để kiểm tra các đường lỗi store
func newUnreachableLogService(t *testing.T) *LogService {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	db := client.Database("taskflow_test")
	return &LogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ActivityLog](db.Collection("activity_logs")),
		userService:          basesvc.NewBaseServiceMongo[authmodels.User](db.Collection("auth_users")),
	}
}

// Các test dưới đây kiểm tra các đường validate chạy TRƯỚC khi service
// chạm tới database, nên có thể dùng LogService rỗng.

func TestCreateLog_InvalidAction(t *testing.T) {
	s := &LogService{}
	_, err := s.CreateLog(context.Background(), &dto.CreateLogInput{
		UserID:    primitive.NewObjectID().Hex(),
		Action:    "delete_account",
		IPAddress: "10.0.0.1",
	})
	if err == nil {
		t.Fatal("expected validation error for action outside the closed set")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("expected *common.Error, got %T", err)
	}
	if customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("expected status %d, got %d", common.StatusBadRequest, customErr.StatusCode)
	}
}

func TestCreateLog_MissingRequiredFields(t *testing.T) {
	s := &LogService{}
	tests := []struct {
		name  string
		input *dto.CreateLogInput
	}{
		{"thiếu userId", &dto.CreateLogInput{Action: "login", IPAddress: "10.0.0.1"}},
		{"thiếu action", &dto.CreateLogInput{UserID: primitive.NewObjectID().Hex(), IPAddress: "10.0.0.1"}},
		{"thiếu ipAddress", &dto.CreateLogInput{UserID: primitive.NewObjectID().Hex(), Action: "login"}},
		{"userId không phải hex", &dto.CreateLogInput{UserID: "zzz", Action: "login", IPAddress: "10.0.0.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateLog(context.Background(), tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSessionDurationBetween(t *testing.T) {
	tests := []struct {
		name       string
		loginTime  int64
		logoutTime int64
		want       int64
	}{
		{"phiên bình thường", 1_000_000, 1_360_000, 360_000},
		{"phiên zero", 1_000_000, 1_000_000, 0},
		{"clock skew cho kết quả âm bị clamp về 0", 2_000_000, 1_999_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionDurationBetween(tt.loginTime, tt.logoutTime); got != tt.want {
				t.Errorf("sessionDurationBetween(%d, %d) = %d, want %d", tt.loginTime, tt.logoutTime, got, tt.want)
			}
		})
	}
}

func TestDeleteLogsByIds_EmptyList(t *testing.T) {
	s := &LogService{}
	_, err := s.DeleteLogsByIds(context.Background(), &dto.BulkDeleteInput{IDs: []string{}})
	if err == nil {
		t.Fatal("expected validation error for empty id list")
	}
}

func TestDeleteLogsByIds_InvalidId(t *testing.T) {
	s := &LogService{}
	_, err := s.DeleteLogsByIds(context.Background(), &dto.BulkDeleteInput{
		IDs: []string{primitive.NewObjectID().Hex(), "not-an-id"},
	})
	if err == nil {
		t.Fatal("expected validation error for malformed id")
	}
}

func TestDeleteLogById_InvalidId(t *testing.T) {
	s := &LogService{}
	if err := s.DeleteLogById(context.Background(), "not-an-id"); !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

// Lỗi store khi lookup user phải nổi lên như lỗi hệ thống (5xx),
// không được ngụy trang thành UserNotFound (404)
func TestCreateLog_StoreFailureIsNotUserNotFound(t *testing.T) {
	s := newUnreachableLogService(t)
	_, err := s.CreateLog(context.Background(), &dto.CreateLogInput{
		UserID:    primitive.NewObjectID().Hex(),
		Action:    "login",
		IPAddress: "10.0.0.1",
	})
	if err == nil {
		t.Fatal("expected store error")
	}
	if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrNotFound) {
		t.Fatalf("store failure must not surface as not-found, got %v", err)
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("expected *common.Error, got %T", err)
	}
	if customErr.StatusCode < common.StatusInternalServerError {
		t.Errorf("expected 5xx status, got %d", customErr.StatusCode)
	}
}

// Lỗi store trong lookup session-linkage phải được trả về,
// không được coi như "user chưa từng login"
func TestResolveSessionDuration_StoreFailurePropagates(t *testing.T) {
	s := newUnreachableLogService(t)
	_, found, err := s.resolveSessionDuration(context.Background(), primitive.NewObjectID(), 1_000_000)
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
	if found {
		t.Error("found must be false on store failure")
	}
	if errors.Is(err, common.ErrNotFound) {
		t.Errorf("store failure must not look like not-found, got %v", err)
	}
}

// Filter liên kết phiên chỉ nhắm vào các bản ghi login có loginTime của đúng user
func TestBuildSessionLinkageFilter(t *testing.T) {
	userID := primitive.NewObjectID()
	filter := buildSessionLinkageFilter(userID)

	if filter["userId"] != userID {
		t.Errorf("userId = %v, want %v", filter["userId"], userID)
	}
	if filter["action"] != models.ActionLogin {
		t.Errorf("action = %v, want %q", filter["action"], models.ActionLogin)
	}
	loginTime, ok := filter["loginTime"].(bson.M)
	if !ok {
		t.Fatalf("loginTime clause missing, filter = %v", filter)
	}
	ne, exists := loginTime["$ne"]
	if !exists || ne != nil {
		t.Errorf("loginTime clause = %v, want $ne nil", loginTime)
	}
	if len(filter) != 3 {
		t.Errorf("filter has %d conditions, want 3: %v", len(filter), filter)
	}
}

// Sort loginTime giảm dần đảm bảo bản ghi đầu tiên là lần login GẦN NHẤT,
// không bao giờ là một lần login cũ hơn
func TestSessionLinkageSortPicksMostRecentLogin(t *testing.T) {
	sort := sessionLinkageSort()
	if len(sort) != 1 {
		t.Fatalf("expected single sort key, got %v", sort)
	}
	if sort[0].Key != "loginTime" || sort[0].Value != -1 {
		t.Errorf("sort = %v, want loginTime desc", sort)
	}
}

// Filter bulk delete giữ đủ mọi ID hợp lệ, kể cả ID không còn trong store;
// deletedCount phản ánh phần tồn tại thực tế
func TestBuildBulkDeleteFilter_KeepsAllIds(t *testing.T) {
	present := primitive.NewObjectID()
	absent := primitive.NewObjectID()

	filter, err := buildBulkDeleteFilter([]string{present.Hex(), absent.Hex()})
	if err != nil {
		t.Fatalf("buildBulkDeleteFilter failed: %v", err)
	}

	idClause, ok := filter["_id"].(bson.M)
	if !ok {
		t.Fatalf("expected _id clause, got %v", filter)
	}
	in, ok := idClause["$in"].([]primitive.ObjectID)
	if !ok {
		t.Fatalf("expected $in list, got %v", idClause)
	}
	if len(in) != 2 || in[0] != present || in[1] != absent {
		t.Errorf("$in = %v, want [%v %v]", in, present, absent)
	}
}

func TestBuildBulkDeleteFilter_InvalidId(t *testing.T) {
	if _, err := buildBulkDeleteFilter([]string{"nope"}); !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
