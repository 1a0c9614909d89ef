// Package dto định nghĩa các cấu trúc dữ liệu vào/ra cho domain auth
package dto

// RegisterInput là dữ liệu đầu vào khi đăng ký tài khoản mới
type RegisterInput struct {
	Name     string `json:"name" validate:"required,no_xss"`    // Tên hiển thị
	Email    string `json:"email" validate:"required,email"`    // Email đăng nhập
	Password string `json:"password" validate:"required,min=8"` // Mật khẩu (sẽ được băm bcrypt)
}

// LoginInput là dữ liệu đầu vào khi đăng nhập
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"` // Email đăng nhập
	Password string `json:"password" validate:"required"`    // Mật khẩu
}

// PasswordResetInput là dữ liệu đầu vào khi đặt lại mật khẩu
type PasswordResetInput struct {
	Email       string `json:"email" validate:"required,email"`       // Email của tài khoản cần đặt lại
	NewPassword string `json:"newPassword" validate:"required,min=8"` // Mật khẩu mới
}

// LoginResponse là dữ liệu trả về sau khi đăng nhập thành công
type LoginResponse struct {
	Token string      `json:"token"` // JWT token của phiên đăng nhập
	User  interface{} `json:"user"`  // Thông tin người dùng
}
