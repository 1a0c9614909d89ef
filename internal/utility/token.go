package utility

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/a-sakhautdinov/task-flow/internal/common"
)

// TokenClaims chứa các claims của JWT token dùng cho xác thực
type TokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken tạo JWT token cho user với thời hạn 24 giờ
// @params - secret ký token, id người dùng, role của người dùng
// @returns - chuỗi token đã ký và lỗi nếu có
func CreateToken(secret string, userID string, role string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "task-flow",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken xác thực và giải mã JWT token
// @params - secret ký token, chuỗi token
// @returns - claims đã giải mã và lỗi nếu có
func ParseToken(secret string, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Chỉ chấp nhận HMAC để tránh tấn công đổi thuật toán
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}
