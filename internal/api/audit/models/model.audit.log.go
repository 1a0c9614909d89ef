// Package models định nghĩa các model cho domain audit
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các hành động được ghi nhận trong activity log
const (
	ActionLogin         = "login"          // Đăng nhập
	ActionLogout        = "logout"         // Đăng xuất
	ActionRegister      = "register"       // Đăng ký tài khoản
	ActionPasswordReset = "password_reset" // Đặt lại mật khẩu
)

// Giá trị mặc định khi client không gửi kèm thông tin
const (
	DefaultTokenName = "N/A"     // Tên token mặc định
	DefaultUserAgent = "Unknown" // User agent mặc định
	FilterAll        = "all"     // Giá trị filter bỏ qua điều kiện lọc
)

// ActivityLog đại diện cho một bản ghi hoạt động của người dùng.
// Mỗi lần login/logout/register/password_reset tạo đúng một bản ghi.
// Collection: activity_logs
type ActivityLog struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`       // ID người dùng thực hiện hành động
	Username  string             `json:"username" bson:"username"`   // Tên người dùng tại thời điểm ghi log
	Email     string             `json:"email" bson:"email"`         // Email người dùng tại thời điểm ghi log
	Role      string             `json:"role" bson:"role"`           // Vai trò người dùng tại thời điểm ghi log
	Action    string             `json:"action" bson:"action"`       // Hành động: login, logout, register, password_reset
	IPAddress string             `json:"ipAddress" bson:"ipAddress"` // Địa chỉ IP của client
	UserAgent string             `json:"userAgent" bson:"userAgent"` // User agent của client
	TokenName string             `json:"tokenName" bson:"tokenName"` // Tên token dùng để đăng nhập

	// LoginTime chỉ được set trên bản ghi login (unix milli).
	// Dùng làm mốc liên kết phiên khi ghi logout.
	LoginTime *int64 `json:"loginTime,omitempty" bson:"loginTime,omitempty"`
	// LogoutTime chỉ được set trên bản ghi logout (unix milli)
	LogoutTime *int64 `json:"logoutTime,omitempty" bson:"logoutTime,omitempty"`
	// SessionDuration là thời lượng phiên tính bằng milli giây,
	// chỉ có trên bản ghi logout khi tìm được bản ghi login tương ứng
	SessionDuration *int64 `json:"sessionDuration,omitempty" bson:"sessionDuration,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt,omitempty"` // Thời điểm ghi log (unix milli)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt,omitempty"` // Thời điểm cập nhật (unix milli)
}

// ActivityStats là kết quả thống kê hoạt động trong một khoảng thời gian
type ActivityStats struct {
	Period      string `json:"period" bson:"-"`                // Khoảng thời gian thống kê: 24h, 7d, 30d
	TotalLogs   int64  `json:"totalLogs" bson:"totalLogs"`     // Tổng số bản ghi trong khoảng
	LoginCount  int64  `json:"loginCount" bson:"loginCount"`   // Số lần đăng nhập
	LogoutCount int64  `json:"logoutCount" bson:"logoutCount"` // Số lần đăng xuất
	UniqueUsers int64  `json:"uniqueUsers" bson:"uniqueUsers"` // Số người dùng khác nhau có hoạt động
}
