package utility

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/a-sakhautdinov/task-flow/internal/common"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken(testSecret, "64f1b2c3d4e5f6a7b8c9d0e1", "admin")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != "64f1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.Issuer != "task-flow" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "user-1", "member")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	if _, err := ParseToken("other-secret", token); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := TokenClaims{
		UserID: "user-1",
		Role:   "member",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "task-flow",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ParseToken(testSecret, token); !errors.Is(err, common.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ParseToken(testSecret, token); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
