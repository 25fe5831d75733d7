package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRefundTiers(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		eventDate  time.Time
		wantAmount int64
		wantRate   int
	}{
		{"three days out", now.AddDate(0, 0, 3), 100000, 100},
		{"exactly two days", now.Add(48 * time.Hour), 100000, 100},
		{"one day out", now.AddDate(0, 0, 1), 50000, 50},
		{"same instant", now, 0, 0},
		{"in the past", now.AddDate(0, 0, -1), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CalculateRefund(100000, tt.eventDate, now)
			assert.Equal(t, tt.wantAmount, r.Amount)
			assert.Equal(t, tt.wantRate, r.Rate)
		})
	}
}

func TestCalculateRefundFloorsHalf(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	r := CalculateRefund(101, now.AddDate(0, 0, 1), now)
	assert.Equal(t, int64(50), r.Amount)
	assert.Equal(t, 50, r.Rate)
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, int64(5000), PlatformFee(100000))
	assert.Equal(t, int64(0), PlatformFee(19)) // floored
	assert.Equal(t, int64(1), PlatformFee(20))
}
