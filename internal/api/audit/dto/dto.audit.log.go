// Package dto định nghĩa các cấu trúc dữ liệu vào/ra cho domain audit
package dto

// CreateLogInput là dữ liệu đầu vào khi ghi một bản ghi hoạt động.
// UserID, Action và IPAddress là bắt buộc; các trường còn lại
// sẽ nhận giá trị mặc định nếu bỏ trống.
type CreateLogInput struct {
	UserID    string `json:"userId" validate:"required,object_id"`   // ID người dùng (ObjectID hex)
	Action    string `json:"action" validate:"required,log_action"`  // Hành động: login, logout, register, password_reset
	IPAddress string `json:"ipAddress" validate:"required"`          // Địa chỉ IP của client
	TokenName string `json:"tokenName" validate:"omitempty,no_xss"`  // Tên token (mặc định "N/A")
	UserAgent string `json:"userAgent" validate:"omitempty"`         // User agent (mặc định "Unknown")
}

// QueryLogInput là dữ liệu đầu vào khi truy vấn danh sách bản ghi.
// Các trường filter đều tùy chọn; giá trị "all" hoặc rỗng bỏ qua điều kiện lọc.
type QueryLogInput struct {
	UserID    string `query:"userId" validate:"omitempty,object_id"`                // Lọc theo ID người dùng
	Role      string `query:"role" validate:"omitempty"`                            // Lọc theo vai trò (exact match)
	Action    string `query:"action" validate:"omitempty"`                          // Lọc theo hành động (exact match)
	Search    string `query:"search" validate:"omitempty"`                          // Tìm kiếm substring trên username hoặc ipAddress
	StartDate string `query:"startDate" validate:"omitempty"`                       // Ngày bắt đầu (RFC3339 hoặc YYYY-MM-DD, inclusive)
	EndDate   string `query:"endDate" validate:"omitempty"`                         // Ngày kết thúc (RFC3339 hoặc YYYY-MM-DD, inclusive)
	SortBy    string `query:"sortBy" validate:"omitempty"`                          // Trường sort (mặc định createdAt)
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`        // Thứ tự sort (mặc định desc)
	Page      int64  `query:"page" validate:"omitempty,min=1"`                      // Trang, đánh số từ 1
	Limit     int64  `query:"limit" validate:"omitempty,min=1"`                     // Số bản ghi mỗi trang
}

// StatsInput là dữ liệu đầu vào khi lấy thống kê hoạt động
type StatsInput struct {
	Period string `query:"period" validate:"omitempty"` // Khoảng thời gian: 24h, 7d, 30d (mặc định 7d)
}

// BulkDeleteInput là dữ liệu đầu vào khi xóa nhiều bản ghi
type BulkDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,object_id"` // Danh sách ID bản ghi cần xóa
}
