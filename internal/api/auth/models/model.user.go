// Package models định nghĩa các model cho domain auth
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò người dùng trong hệ thống quản lý công việc
const (
	RoleAdmin  = "admin"  // Quản trị viên, có quyền truy cập audit log
	RoleMember = "member" // Thành viên thường
)

// User đại diện cho thông tin người dùng trong hệ thống.
// Collection: auth_users
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" validate:"required"`          // Tên hiển thị của người dùng
	Email    string             `json:"email" bson:"email" validate:"required,email"`  // Email đăng nhập, duy nhất
	Password string             `json:"-" bson:"password" validate:"required,min=8"`   // Mật khẩu đã băm bcrypt
	Role     string             `json:"role" bson:"role"`                              // Vai trò: admin hoặc member
	Token    string             `json:"-" bson:"token,omitempty"`                      // JWT token của phiên hiện tại
	IsActive bool               `json:"isActive" bson:"isActive"`                      // Trạng thái kích hoạt tài khoản
	CreatedAt int64             `json:"createdAt" bson:"createdAt,omitempty"`          // Thời điểm tạo (unix milli)
	UpdatedAt int64             `json:"updatedAt" bson:"updatedAt,omitempty"`          // Thời điểm cập nhật cuối (unix milli)
}
