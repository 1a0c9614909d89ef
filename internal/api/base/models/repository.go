// Package models chứa các kiểu dùng chung cho layer repository/base (kết quả phân trang, đếm).
package models

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	// Trang hiện tại
	Page int64 `json:"page" bson:"page"`
	// Số lượng mục trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Số lượng mục trong trang hiện tại
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	// Danh sách các mục
	Items []T `json:"items" bson:"items"`
	// Tổng số mục
	Total int64 `json:"total" bson:"total"`
	// Tổng số trang
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// DeleteResult đại diện cho kết quả xóa nhiều bản ghi
type DeleteResult struct {
	// Số bản ghi đã xóa thực tế (có thể nhỏ hơn số id yêu cầu)
	DeletedCount int64 `json:"deletedCount" bson:"deletedCount"`
}

// TotalPages tính tổng số trang theo công thức làm tròn lên.
// Total = 0 cho 0 trang; limit <= 0 cũng cho 0 trang để tránh chia cho 0.
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
