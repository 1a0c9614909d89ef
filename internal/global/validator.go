package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("object_id", validateObjectID)
	_ = Validate.RegisterValidation("log_action", validateLogAction)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID kiểm tra chuỗi là ObjectID hex hợp lệ.
// Chuỗi rỗng = optional, bỏ qua (kết hợp với omitempty).
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

// validateLogAction kiểm tra action thuộc closed set của activity log.
// Danh sách hợp lệ: login, logout, register, password_reset.
func validateLogAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "login", "logout", "register", "password_reset":
		return true
	}
	return false
}
