package auditsvc

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/a-sakhautdinov/task-flow/config"
	"github.com/a-sakhautdinov/task-flow/internal/api/audit/dto"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	global.ServerConfig = &config.Configuration{
		AuditDefaultPageLimit: 50,
		AuditMaxPageLimit:     500,
	}
	os.Exit(m.Run())
}

func TestBuildLogFilter_Empty(t *testing.T) {
	filter, err := buildLogFilter(&dto.QueryLogInput{})
	assert.NoError(t, err)
	assert.Empty(t, filter)
}

func TestBuildLogFilter_SentinelAllSkipsConditions(t *testing.T) {
	filter, err := buildLogFilter(&dto.QueryLogInput{
		Role:   "all",
		Action: "all",
		UserID: "all",
	})
	assert.NoError(t, err)
	assert.Empty(t, filter)
}

func TestBuildLogFilter_ExactMatchFields(t *testing.T) {
	userID := primitive.NewObjectID()
	filter, err := buildLogFilter(&dto.QueryLogInput{
		UserID: userID.Hex(),
		Role:   "admin",
		Action: "login",
	})
	assert.NoError(t, err)
	assert.Equal(t, userID, filter["userId"])
	assert.Equal(t, "admin", filter["role"])
	assert.Equal(t, "login", filter["action"])
}

func TestBuildLogFilter_InvalidUserID(t *testing.T) {
	_, err := buildLogFilter(&dto.QueryLogInput{UserID: "not-a-hex-id"})
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestBuildLogFilter_SearchBuildsCaseInsensitiveOr(t *testing.T) {
	filter, err := buildLogFilter(&dto.QueryLogInput{Search: "alice"})
	assert.NoError(t, err)

	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter)
	}
	assert.Len(t, or, 2)
	assert.Equal(t, bson.M{"username": bson.M{"$regex": "alice", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"ipAddress": bson.M{"$regex": "alice", "$options": "i"}}, or[1])
}

func TestBuildLogFilter_SearchEscapesRegexMeta(t *testing.T) {
	filter, err := buildLogFilter(&dto.QueryLogInput{Search: "10.0.0.1"})
	assert.NoError(t, err)

	or := filter["$or"].(bson.A)
	ipClause := or[1].(bson.M)["ipAddress"].(bson.M)
	assert.Equal(t, `10\.0\.0\.1`, ipClause["$regex"])
}

func TestBuildLogFilter_DateRangeInclusive(t *testing.T) {
	filter, err := buildLogFilter(&dto.QueryLogInput{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-10",
	})
	assert.NoError(t, err)

	createdAt, ok := filter["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("expected createdAt range, got %v", filter)
	}

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC).UnixMilli() - 1
	assert.Equal(t, wantStart, createdAt["$gte"])
	assert.Equal(t, wantEnd, createdAt["$lte"])
}

func TestBuildLogFilter_UnparseableDate(t *testing.T) {
	_, err := buildLogFilter(&dto.QueryLogInput{StartDate: "03/01/2024"})
	assert.ErrorIs(t, err, common.ErrInvalidFormat)

	_, err = buildLogFilter(&dto.QueryLogInput{EndDate: "yesterday"})
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestParseDateBound_RFC3339(t *testing.T) {
	want := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC).UnixMilli()
	got, err := parseDateBound("2024-03-10T12:30:00Z", false)
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	// endOfDay chỉ áp dụng cho dạng ngày, không áp dụng cho RFC3339
	got, err = parseDateBound("2024-03-10T12:30:00Z", true)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuildLogSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      bson.D
	}{
		{"mặc định createdAt giảm dần", "", "", bson.D{{Key: "createdAt", Value: -1}}},
		{"sort tăng dần theo username", "username", "asc", bson.D{{Key: "username", Value: 1}}},
		{"trường ngoài whitelist rơi về createdAt", "password", "asc", bson.D{{Key: "createdAt", Value: 1}}},
		{"sessionDuration giảm dần", "sessionDuration", "desc", bson.D{{Key: "sessionDuration", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildLogSort(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestListUserActivity_InvalidId(t *testing.T) {
	s := &LogService{}
	_, err := s.ListUserActivity(context.Background(), "not-a-hex-id", 10)
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestListUserActivity_StoreFailurePropagates(t *testing.T) {
	s := newUnreachableLogService(t)
	_, err := s.ListUserActivity(context.Background(), primitive.NewObjectID().Hex(), 10)
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestGetFilterOptions_StoreFailurePropagates(t *testing.T) {
	s := newUnreachableLogService(t)
	_, err := s.GetFilterOptions(context.Background())
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestToStrings_FiltersNonStrings(t *testing.T) {
	values := []interface{}{"admin", 42, "member", nil}
	assert.Equal(t, []string{"admin", "member"}, toStrings(values))
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{"không truyền dùng mặc định", 0, 50},
		{"âm dùng mặc định", -1, 50},
		{"trong khoảng giữ nguyên", 100, 100},
		{"đúng trần giữ nguyên", 500, 500},
		{"vượt trần bị clamp", 10000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLimit(tt.limit))
		})
	}
}
