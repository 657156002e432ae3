package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHoursRoundTrip(t *testing.T) {
	b := &Business{}

	hours, err := b.Hours()
	require.NoError(t, err)
	assert.False(t, hours.Monday.IsOpen)

	week := WeekHours{
		Monday: DayHours{IsOpen: true, OpenTime: "08:00", CloseTime: "17:00"},
		Sunday: DayHours{IsOpen: false},
	}
	require.NoError(t, b.SetHours(week))

	got, err := b.Hours()
	require.NoError(t, err)
	assert.True(t, got.Monday.IsOpen)
	assert.Equal(t, "08:00", got.Monday.OpenTime)
	assert.Equal(t, "17:00", got.Monday.CloseTime)
	assert.False(t, got.Sunday.IsOpen)
}

func TestBusinessValidate(t *testing.T) {
	b := &Business{
		UUID:   "b5f3a1c0-0000-0000-0000-000000000001",
		UserID: 1,
		Name:   "Ace Plumbing",
	}
	assert.NoError(t, b.Validate())

	b.Email = "not-an-email"
	assert.Error(t, b.Validate())

	b.Email = "ace@example.com"
	b.WebsiteURL = "not a url"
	assert.Error(t, b.Validate())
}

func TestSubscriptionIsEntitling(t *testing.T) {
	for _, status := range []string{SubscriptionStatusActive, SubscriptionStatusTrialing, SubscriptionStatusPastDue} {
		s := &Subscription{Status: status}
		assert.True(t, s.IsEntitling(), "status %q should entitle", status)
	}
	for _, status := range []string{SubscriptionStatusCanceled, SubscriptionStatusIncomplete, ""} {
		s := &Subscription{Status: status}
		assert.False(t, s.IsEntitling(), "status %q should not entitle", status)
	}
}
