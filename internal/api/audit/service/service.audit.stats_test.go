package auditsvc

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name         string
		period       string
		wantDuration time.Duration
		wantResolved string
	}{
		{"24h", "24h", 24 * time.Hour, "24h"},
		{"7d", "7d", 7 * 24 * time.Hour, "7d"},
		{"30d", "30d", 30 * 24 * time.Hour, "30d"},
		{"rỗng rơi về mặc định", "", 7 * 24 * time.Hour, "7d"},
		{"giá trị lạ rơi về mặc định", "90d", 7 * 24 * time.Hour, "7d"},
		{"sai hoa thường rơi về mặc định", "24H", 7 * 24 * time.Hour, "7d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration, resolved := resolvePeriod(tt.period)
			if duration != tt.wantDuration {
				t.Errorf("resolvePeriod(%q) duration = %v, want %v", tt.period, duration, tt.wantDuration)
			}
			if resolved != tt.wantResolved {
				t.Errorf("resolvePeriod(%q) resolved = %q, want %q", tt.period, resolved, tt.wantResolved)
			}
		})
	}
}
