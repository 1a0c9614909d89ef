package auditsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/a-sakhautdinov/task-flow/internal/api/audit/models"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
)

// Các khoảng thời gian thống kê được hỗ trợ
const (
	PeriodDay     = "24h"
	PeriodWeek    = "7d"
	PeriodMonth   = "30d"
	PeriodDefault = PeriodWeek
)

// resolvePeriod chuyển chuỗi period thành duration.
// Giá trị không nhận dạng được rơi về mặc định 7d thay vì báo lỗi,
// để UI dashboard luôn nhận được dữ liệu.
func resolvePeriod(period string) (time.Duration, string) {
	switch period {
	case PeriodDay:
		return 24 * time.Hour, PeriodDay
	case PeriodWeek:
		return 7 * 24 * time.Hour, PeriodWeek
	case PeriodMonth:
		return 30 * 24 * time.Hour, PeriodMonth
	default:
		return 7 * 24 * time.Hour, PeriodDefault
	}
}

// GetStats tính thống kê hoạt động trong khoảng thời gian cho trước
// bằng một aggregation pipeline duy nhất: đếm tổng số bản ghi, số lần
// login/logout và số người dùng khác nhau (distinct userId).
func (s *LogService) GetStats(ctx context.Context, period string) (*models.ActivityStats, error) {
	duration, resolved := resolvePeriod(period)
	cutoff := time.Now().Add(-duration).UnixMilli()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": cutoff},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"totalLogs": bson.M{"$sum": 1},
			"loginCount": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$action", models.ActionLogin}}, 1, 0},
			}},
			"logoutCount": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$action", models.ActionLogout}}, 1, 0},
			}},
			"userIds": bson.M{"$addToSet": "$userId"},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"uniqueUsers": bson.M{"$size": "$userIds"},
		}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("period", resolved).
			Error("Failed to aggregate activity stats")
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []models.ActivityStats
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Không có bản ghi nào trong khoảng: trả về thống kê zero, không phải lỗi
	stats := &models.ActivityStats{Period: resolved}
	if len(results) > 0 {
		stats.TotalLogs = results[0].TotalLogs
		stats.LoginCount = results[0].LoginCount
		stats.LogoutCount = results[0].LogoutCount
		stats.UniqueUsers = results[0].UniqueUsers
	}

	return stats, nil
}
