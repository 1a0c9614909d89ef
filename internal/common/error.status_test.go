package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_Nil(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestConvertMongoError_PreservesNotFound(t *testing.T) {
	got := ConvertMongoError(ErrNotFound)
	if !errors.Is(got, ErrNotFound) {
		t.Errorf("expected ErrNotFound to pass through, got %v", got)
	}

	// Kể cả khi ErrNotFound đã bị wrap
	wrapped := fmt.Errorf("lookup failed: %w", ErrNotFound)
	if got := ConvertMongoError(wrapped); !errors.Is(got, ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound to pass through, got %v", got)
	}
}

func TestConvertMongoError_CommandErrorRanges(t *testing.T) {
	tests := []struct {
		name string
		code int32
		want error
	}{
		{"dải connection", 150, ErrMongoConnection},
		{"dải auth", 250, ErrMongoAuth},
		{"dải query", 350, ErrMongoQuery},
		{"dải write", 450, ErrMongoWrite},
		{"dải system", 550, ErrMongoSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertMongoError(mongo.CommandError{Code: tt.code})
			if !errors.Is(got, tt.want) {
				t.Errorf("ConvertMongoError(code=%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestConvertMongoError_DuplicateKey(t *testing.T) {
	dupErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	got := ConvertMongoError(dupErr)
	if !errors.Is(got, ErrMongoDuplicate) {
		t.Errorf("expected ErrMongoDuplicate, got %v", got)
	}
}

func TestConvertMongoError_UnknownFallsBackToInternal(t *testing.T) {
	got := ConvertMongoError(errors.New("something unexpected"))

	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("expected *Error, got %T", got)
	}
	if customErr.StatusCode != StatusInternalServerError {
		t.Errorf("expected status %d, got %d", StatusInternalServerError, customErr.StatusCode)
	}
	if customErr.Code.Code != ErrCodeDatabase.Code {
		t.Errorf("expected code %s, got %s", ErrCodeDatabase.Code, customErr.Code.Code)
	}
}

func TestErrorIs_MatchesByCodeAndMessage(t *testing.T) {
	if !errors.Is(ErrNotFound, ErrNotFound) {
		t.Error("sentinel phải match với chính nó")
	}

	same := NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, "extra details")
	if !errors.Is(same, ErrNotFound) {
		t.Error("error cùng code và message phải match sentinel")
	}

	if errors.Is(ErrNotFound, ErrInvalidInput) {
		t.Error("hai sentinel khác nhau không được match")
	}
}

func TestErrorTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"InvalidInput là 400", ErrInvalidInput, StatusBadRequest},
		{"InvalidFormat là 400", ErrInvalidFormat, StatusBadRequest},
		{"RequiredField là 400", ErrRequiredField, StatusBadRequest},
		{"NotFound là 404", ErrNotFound, StatusNotFound},
		{"UserNotFound là 404", ErrUserNotFound, StatusNotFound},
		{"Duplicate là 409", ErrDuplicate, StatusConflict},
		{"Forbidden là 403", ErrForbidden, StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var customErr *Error
			if !errors.As(tt.err, &customErr) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if customErr.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", customErr.StatusCode, tt.want)
			}
		})
	}
}
