package models

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int64
		want  int64
	}{
		{"không có bản ghi", 0, 50, 0},
		{"chia hết", 100, 50, 2},
		{"làm tròn lên", 120, 50, 3},
		{"một bản ghi", 1, 50, 1},
		{"đúng một trang", 50, 50, 1},
		{"limit zero không chia cho 0", 120, 0, 0},
		{"total âm", -5, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

// 120 bản ghi, limit 50: trang 3 chứa phần dư 20 bản ghi
func TestPaginationLastPageRemainder(t *testing.T) {
	total, limit := int64(120), int64(50)
	totalPage := TotalPages(total, limit)
	if totalPage != 3 {
		t.Fatalf("totalPage = %d, want 3", totalPage)
	}

	lastPageCount := total - (totalPage-1)*limit
	if lastPageCount != 20 {
		t.Errorf("last page item count = %d, want 20", lastPageCount)
	}
}
