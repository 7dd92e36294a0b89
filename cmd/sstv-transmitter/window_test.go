package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoWindow(t *testing.T) {
	zero := time.Time{}
	w := NewWindow(zero, zero)
	assert.True(t, w.Active())
	assert.Equal(t, time.Duration(0), w.Until())
}

func TestSameStartEnd(t *testing.T) {
	// Treat this as "no window".
	now := time.Now()
	w := NewWindow(now, now)
	assert.True(t, w.Active())
}

func TestStartLessThanEnd(t *testing.T) {
	w := NewWindow(mkTime(9, 10), mkTime(17, 30))

	w.Now = mkNow(9, 9)
	assert.False(t, w.Active())

	w.Now = mkNow(9, 10)
	assert.True(t, w.Active())

	w.Now = mkNow(12, 0)
	assert.True(t, w.Active())

	w.Now = mkNow(17, 30)
	assert.True(t, w.Active())

	w.Now = mkNow(17, 31)
	assert.False(t, w.Active())
}

func TestStartGreaterThanEnd(t *testing.T) {
	// Window crosses midnight.
	w := NewWindow(mkTime(22, 10), mkTime(9, 50))

	w.Now = mkNow(22, 9)
	assert.False(t, w.Active())

	w.Now = mkNow(22, 10)
	assert.True(t, w.Active())

	w.Now = mkNow(23, 59)
	assert.True(t, w.Active())

	w.Now = mkNow(0, 0)
	assert.True(t, w.Active())

	w.Now = mkNow(9, 50)
	assert.True(t, w.Active())

	w.Now = mkNow(9, 51)
	assert.False(t, w.Active())
}

func TestUntil(t *testing.T) {
	w := NewWindow(mkTime(9, 10), mkTime(17, 30))

	w.Now = mkNow(12, 0)
	assert.Equal(t, time.Duration(0), w.Until())

	w.Now = mkNow(9, 0)
	assert.Equal(t, 10*time.Minute, w.Until())

	// After today's window: wait until tomorrow morning.
	w.Now = mkNow(18, 0)
	assert.Equal(t, (15*60+10)*time.Minute, w.Until())
}

func mkTime(hour, minute int) time.Time {
	return time.Date(2024, 3, 14, hour, minute, 0, 0, time.UTC)
}

func mkNow(hour, minute int) func() time.Time {
	return func() time.Time {
		return mkTime(hour, minute)
	}
}
