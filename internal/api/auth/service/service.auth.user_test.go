package authsvc

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/a-sakhautdinov/task-flow/internal/api/base/service"
	"github.com/a-sakhautdinov/task-flow/internal/api/auth/dto"
	"github.com/a-sakhautdinov/task-flow/internal/api/auth/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	os.Exit(m.Run())
}

// Các test dưới đây chỉ đi qua đường validate, trước khi service chạm tới database

func TestRegister_Validation(t *testing.T) {
	s := &UserService{}
	tests := []struct {
		name  string
		input *dto.RegisterInput
	}{
		{"thiếu tên", &dto.RegisterInput{Email: "a@b.com", Password: "password123"}},
		{"email sai định dạng", &dto.RegisterInput{Name: "Alice", Email: "not-an-email", Password: "password123"}},
		{"mật khẩu quá ngắn", &dto.RegisterInput{Name: "Alice", Email: "a@b.com", Password: "short"}},
		{"tên chứa script", &dto.RegisterInput{Name: "<script>x</script>", Email: "a@b.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Register(context.Background(), tt.input, ClientMeta{}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	s := &UserService{}
	tests := []struct {
		name  string
		input *dto.LoginInput
	}{
		{"thiếu email", &dto.LoginInput{Password: "password123"}},
		{"thiếu mật khẩu", &dto.LoginInput{Email: "a@b.com"}},
		{"email sai định dạng", &dto.LoginInput{Email: "nope", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Login(context.Background(), tt.input, ClientMeta{}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// Lỗi store khi tra cứu user phải nổi lên nguyên trạng,
// không được ngụy trang thành UserNotFound
func TestLogin_StoreFailureIsNotUserNotFound(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	s := &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](
			client.Database("taskflow_test").Collection("auth_users")),
	}

	_, err = s.Login(context.Background(), &dto.LoginInput{
		Email:    "a@b.com",
		Password: "password123",
	}, ClientMeta{})
	if err == nil {
		t.Fatal("expected store error")
	}
	if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrNotFound) {
		t.Errorf("store failure must not surface as not-found, got %v", err)
	}
}

func TestResetPassword_Validation(t *testing.T) {
	s := &UserService{}
	err := s.ResetPassword(context.Background(), &dto.PasswordResetInput{
		Email:       "a@b.com",
		NewPassword: "short",
	}, ClientMeta{})
	if err == nil {
		t.Error("expected validation error for short password")
	}
}
