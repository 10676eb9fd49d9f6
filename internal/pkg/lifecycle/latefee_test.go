package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverdueDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil end", func(t *testing.T) {
		assert.Equal(t, 0, OverdueDays(nil, now))
	})

	t.Run("future end", func(t *testing.T) {
		end := now.Add(48 * time.Hour)
		assert.Equal(t, 0, OverdueDays(&end, now))
	})

	t.Run("end exactly now", func(t *testing.T) {
		end := now
		assert.Equal(t, 0, OverdueDays(&end, now))
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		end := now.Add(-time.Hour)
		assert.Equal(t, 1, OverdueDays(&end, now))
	})

	t.Run("whole days", func(t *testing.T) {
		end := now.Add(-20 * 24 * time.Hour)
		assert.Equal(t, 20, OverdueDays(&end, now))
	})
}

func TestLateFee(t *testing.T) {
	t.Run("zero when not overdue", func(t *testing.T) {
		assert.Equal(t, 0.0, LateFee(100000, 0, 0.001))
		assert.Equal(t, 0.0, LateFee(100000, -5, 0.001))
	})

	t.Run("zero on zero balance", func(t *testing.T) {
		assert.Equal(t, 0.0, LateFee(0, 10, 0.001))
	})

	t.Run("grows linearly with overdue days", func(t *testing.T) {
		assert.InDelta(t, 100.0, LateFee(100000, 1, 0.001), 1e-9)
		assert.InDelta(t, 2000.0, LateFee(100000, 20, 0.001), 1e-9)
		assert.InDelta(t, LateFee(100000, 10, 0.001)*2, LateFee(100000, 20, 0.001), 1e-9)
	})

	t.Run("default rate applied when unset", func(t *testing.T) {
		assert.InDelta(t, 100000*DefaultLateFeeDailyRate*5, LateFee(100000, 5, 0), 1e-9)
	})
}
