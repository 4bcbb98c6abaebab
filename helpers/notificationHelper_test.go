package helpers

import (
	"testing"

	"go-jewelry-order-management/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatusNotificationProductionStarted(t *testing.T) {
	n := BuildStatusNotification(models.StatusConfirmed, models.StatusProductionFloor,
		"ORD-20260831-00042", "Priya Sharma", "", "salesman-1")
	require.NotNil(t, n)

	assert.Equal(t, "Production Started", n.Title)
	assert.Equal(t, models.NotificationInfo, n.Type)
	assert.Contains(t, n.Message, "ORD-20260831-00042")
	assert.Contains(t, n.Message, "Priya Sharma")
	assert.Equal(t, "salesman-1", n.User_id)
	assert.Equal(t, models.RoleSalesman, n.User_type)
	assert.False(t, n.Is_read)
	require.NotNil(t, n.Order_code)
	assert.Equal(t, "ORD-20260831-00042", *n.Order_code)
	assert.Equal(t, models.StatusConfirmed, n.Metadata["old_status"])
	assert.Equal(t, models.StatusProductionFloor, n.Metadata["new_status"])
}

func TestBuildStatusNotificationCancelledWithReason(t *testing.T) {
	n := BuildStatusNotification(models.StatusCadCompleted, models.StatusCancelled,
		"ORD-20260831-00007", "Arjun Mehta", "Customer request", "salesman-2")
	require.NotNil(t, n)

	assert.Equal(t, "Order Cancelled", n.Title)
	assert.Equal(t, models.NotificationError, n.Type)
	assert.Contains(t, n.Message, "Customer request")
	assert.Equal(t, "Customer request", n.Metadata["cancel_reason"])
}

func TestBuildStatusNotificationCancelledWithoutReason(t *testing.T) {
	n := BuildStatusNotification(models.StatusConfirmed, models.StatusCancelled,
		"ORD-20260831-00008", "Arjun Mehta", "", "salesman-2")
	require.NotNil(t, n)

	assert.Contains(t, n.Message, "contact support")
	assert.NotContains(t, n.Metadata, "cancel_reason")
}

func TestBuildStatusNotificationSameStatusIsNoop(t *testing.T) {
	n := BuildStatusNotification(models.StatusFinished, models.StatusFinished,
		"ORD-20260831-00009", "Priya Sharma", "", "salesman-1")
	assert.Nil(t, n)
}

func TestBuildStatusNotificationUnknownStatusIsNoop(t *testing.T) {
	// confirmed is the initial status and has no message entry
	n := BuildStatusNotification(models.StatusCancelled, models.StatusConfirmed,
		"ORD-20260831-00010", "Priya Sharma", "", "salesman-1")
	assert.Nil(t, n)

	n = BuildStatusNotification(models.StatusConfirmed, "not_a_status",
		"ORD-20260831-00011", "Priya Sharma", "", "salesman-1")
	assert.Nil(t, n)
}

func TestBuildStatusNotificationEveryTerminalStatusHasEntry(t *testing.T) {
	statuses := []string{
		models.StatusOrderViewAccepted,
		models.StatusCadCompleted,
		models.StatusProductionFloor,
		models.StatusFinished,
		models.StatusDispatched,
		models.StatusCancelled,
	}
	for _, status := range statuses {
		n := BuildStatusNotification(models.StatusConfirmed, status,
			"ORD-20260831-00001", "Priya Sharma", "reason", "salesman-1")
		require.NotNil(t, n, "expected an entry for %q", status)
		assert.NotEmpty(t, n.Title)
		assert.NotEmpty(t, n.Message)
		assert.NotEmpty(t, n.Notification_id)
	}
}
