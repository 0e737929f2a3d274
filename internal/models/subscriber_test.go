package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testToday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func subscriberDueIn(days int) Subscriber {
	return Subscriber{
		NextSubscriptionDate: testToday.AddDate(0, 0, days),
		IsActive:             true,
	}
}

func TestSubscriber_Status(t *testing.T) {
	const window = 7

	tests := []struct {
		name string
		sub  Subscriber
		want SubscriptionStatus
	}{
		{name: "due today", sub: subscriberDueIn(0), want: StatusDueSoon},
		{name: "due at window edge", sub: subscriberDueIn(window), want: StatusDueSoon},
		{name: "due just past window", sub: subscriberDueIn(window + 1), want: StatusUpToDate},
		{name: "one day overdue", sub: subscriberDueIn(-1), want: StatusOverdue},
		{name: "far in the future", sub: subscriberDueIn(90), want: StatusUpToDate},
		{
			name: "deactivated wins over overdue",
			sub: Subscriber{
				NextSubscriptionDate: testToday.AddDate(0, 0, -40),
				IsDeactivated:        true,
			},
			want: StatusDeactivated,
		},
		{
			name: "deactivated wins over due soon",
			sub: Subscriber{
				NextSubscriptionDate: testToday.AddDate(0, 0, 2),
				IsDeactivated:        true,
			},
			want: StatusDeactivated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.Status(testToday, window))
		})
	}
}

func TestSubscriber_DeactivatedNeverDueOrOverdue(t *testing.T) {
	sub := Subscriber{
		NextSubscriptionDate: testToday.AddDate(0, 0, -40),
		IsDeactivated:        true,
	}

	assert.False(t, sub.IsOverdue(testToday))
	assert.False(t, sub.IsDueSoon(testToday, 7))
	_, ok := sub.DaysUntilDue(testToday)
	assert.False(t, ok)
	_, ok = sub.OverdueSeverity(testToday)
	assert.False(t, ok)
}

func TestSubscriber_OverdueSeverity(t *testing.T) {
	tests := []struct {
		name        string
		daysOverdue int
		want        Severity
	}{
		{name: "one day", daysOverdue: 1, want: SeverityMild},
		{name: "fourteen days", daysOverdue: 14, want: SeverityMild},
		{name: "fifteen days is moderate", daysOverdue: 15, want: SeverityModerate},
		{name: "twenty nine days", daysOverdue: 29, want: SeverityModerate},
		{name: "thirty days is severe", daysOverdue: 30, want: SeveritySevere},
		{name: "far past due", daysOverdue: 120, want: SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := subscriberDueIn(-tt.daysOverdue)
			got, ok := sub.OverdueSeverity(testToday)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubscriber_OverdueSeverity_NotOverdue(t *testing.T) {
	sub := subscriberDueIn(0)
	_, ok := sub.OverdueSeverity(testToday)
	assert.False(t, ok)
}

func TestSubscriber_TimeOfDayIsIgnored(t *testing.T) {
	// Classification compares calendar dates, not instants: late in the
	// evening a payment due "today" is still due soon, not overdue.
	lateToday := time.Date(2024, 6, 15, 23, 50, 0, 0, time.UTC)
	sub := Subscriber{
		NextSubscriptionDate: time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC),
		IsActive:             true,
	}

	assert.False(t, sub.IsOverdue(lateToday))
	assert.True(t, sub.IsDueSoon(lateToday, 7))
}

func TestEstimatedRevenue(t *testing.T) {
	assert.Equal(t, 0, EstimatedRevenue(0))
	assert.Equal(t, 700, EstimatedRevenue(7))
}

func TestKitType_Label(t *testing.T) {
	assert.Equal(t, "Standard", KitStandard.Label())
	assert.Equal(t, "Mini", KitMini.Label())
	assert.Equal(t, "UNKNOWN", KitType("UNKNOWN").Label())
}
