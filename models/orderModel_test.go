package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	valid := []string{
		StatusConfirmed,
		StatusOrderViewAccepted,
		StatusCadCompleted,
		StatusProductionFloor,
		StatusFinished,
		StatusDispatched,
		StatusCancelled,
	}
	for _, status := range valid {
		assert.True(t, IsValidStatus(status), "expected %q to be valid", status)
	}

	invalid := []string{"", "CONFIRMED", "shipped", "Confirmed", "cancel"}
	for _, status := range invalid {
		assert.False(t, IsValidStatus(status), "expected %q to be invalid", status)
	}
}

func TestIsValidPriority(t *testing.T) {
	for _, priority := range []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, IsValidPriority(priority))
	}
	for _, priority := range []string{"", "URGENT", "normal"} {
		assert.False(t, IsValidPriority(priority))
	}
}

func TestIsEditableStatus(t *testing.T) {
	assert.True(t, IsEditableStatus(StatusConfirmed))
	assert.True(t, IsEditableStatus(StatusOrderViewAccepted))

	for _, status := range []string{
		StatusCadCompleted,
		StatusProductionFloor,
		StatusFinished,
		StatusDispatched,
		StatusCancelled,
	} {
		assert.False(t, IsEditableStatus(status), "expected %q to be locked", status)
	}
}

func TestWithinEditWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      bool
	}{
		{"just created", now, true},
		{"one hour old", now.Add(-1 * time.Hour), true},
		{"exactly 48 hours", now.Add(-48 * time.Hour), true},
		{"one second past", now.Add(-48*time.Hour - time.Second), false},
		{"49 hours old", now.Add(-49 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinEditWindow(tt.createdAt, now))
		})
	}
}
