// Package models contains the domain structures for the business tracker:
// subscribers with their billing state, installation clients and ad-hoc
// orders, together with helper DTO types for data arriving from JSON
// requests.
package models

import "time"

// KitType identifies the subscription kit a subscriber rents.
type KitType string

// Supported kit types.
const (
	KitStandard KitType = "STANDARD"
	KitMini     KitType = "MINI"
)

var kitTypeLabels = map[KitType]string{
	KitStandard: "Standard",
	KitMini:     "Mini",
}

// Label returns the human-readable name of the kit type.
func (k KitType) Label() string {
	if label, ok := kitTypeLabels[k]; ok {
		return label
	}
	return string(k)
}

// Valid reports whether k is one of the supported kit types.
func (k KitType) Valid() bool {
	_, ok := kitTypeLabels[k]
	return ok
}

// SubscriptionStatus classifies a subscriber relative to today.
type SubscriptionStatus string

// Classification outcomes, most severe first. Deactivated overrides
// everything else.
const (
	StatusDeactivated SubscriptionStatus = "deactivated"
	StatusOverdue     SubscriptionStatus = "overdue"
	StatusDueSoon     SubscriptionStatus = "due_soon"
	StatusUpToDate    SubscriptionStatus = "up_to_date"
)

// Severity buckets overdue subscribers by how long the due date has
// passed.
type Severity string

// Severity buckets. The boundary values 15 and 30 belong to the stricter
// bucket.
const (
	SeverityMild     Severity = "mild"     // overdue by fewer than 15 days
	SeverityModerate Severity = "moderate" // overdue by 15 to 29 days
	SeveritySevere   Severity = "severe"   // overdue by 30 days or more
)

// UnitSubscriptionPrice is the assumed revenue per overdue subscription,
// used only for the estimated-revenue figure on the overdue report.
const UnitSubscriptionPrice = 100

// Subscriber is the central entity of the tracker: a recurring kit
// subscription with its billing dates and deactivation state. Dates are
// calendar dates stored at midnight UTC.
type Subscriber struct {
	ID                   int
	Name                 string
	Contact              string // phone number, validated at the form boundary
	Email                string
	KitType              KitType
	LastSubscriptionDate time.Time // date of the most recent payment
	NextSubscriptionDate time.Time // date the next payment is due
	IsActive             bool      // administrative flag, distinct from deactivation
	AutoNotify           bool      // whether automated due reminders apply
	IsDeactivated        bool
	DeactivatedAt        *time.Time
	DeactivationReason   string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DaysUntilDue returns the signed number of days until the next payment
// is due (negative means overdue). The second return value is false for
// deactivated subscribers or when the due date is missing.
func (s *Subscriber) DaysUntilDue(today time.Time) (int, bool) {
	if s.IsDeactivated || s.NextSubscriptionDate.IsZero() {
		return 0, false
	}
	return daysBetween(dateOf(today), dateOf(s.NextSubscriptionDate)), true
}

// IsDueSoon reports whether the next payment falls within the given
// window of days from today, inclusive, and is not already past. Always
// false for deactivated subscribers.
func (s *Subscriber) IsDueSoon(today time.Time, window int) bool {
	days, ok := s.DaysUntilDue(today)
	return ok && days >= 0 && days <= window
}

// IsOverdue reports whether the next payment date has passed. Always
// false for deactivated subscribers.
func (s *Subscriber) IsOverdue(today time.Time) bool {
	if s.IsDeactivated || s.NextSubscriptionDate.IsZero() {
		return false
	}
	return dateOf(s.NextSubscriptionDate).Before(dateOf(today))
}

// Status resolves the single classification for display: deactivated
// wins over overdue, overdue over due-soon, due-soon over up-to-date.
func (s *Subscriber) Status(today time.Time, window int) SubscriptionStatus {
	switch {
	case s.IsDeactivated:
		return StatusDeactivated
	case s.IsOverdue(today):
		return StatusOverdue
	case s.IsDueSoon(today, window):
		return StatusDueSoon
	default:
		return StatusUpToDate
	}
}

// OverdueSeverity buckets an overdue subscriber by days past due. The
// second return value is false when the subscriber is not overdue.
func (s *Subscriber) OverdueSeverity(today time.Time) (Severity, bool) {
	if !s.IsOverdue(today) {
		return "", false
	}
	daysOverdue := daysBetween(dateOf(s.NextSubscriptionDate), dateOf(today))
	switch {
	case daysOverdue >= 30:
		return SeveritySevere, true
	case daysOverdue >= 15:
		return SeverityModerate, true
	default:
		return SeverityMild, true
	}
}

// EstimatedRevenue is the overdue report's rough figure: a fixed unit
// price per overdue subscription. Not a billing computation.
func EstimatedRevenue(overdueCount int) int {
	return overdueCount * UnitSubscriptionPrice
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// DummySubscriber receives subscriber data from a JSON request before it
// is validated and converted into a Subscriber. Dates arrive as strings
// in the 2006-01-02 format so they can be parsed and checked manually.
type DummySubscriber struct {
	Name                 string `json:"name" validate:"required"`
	Contact              string `json:"contact" validate:"required,phone"`
	Email                string `json:"email" validate:"required,email"`
	KitType              string `json:"kit_type" validate:"required,oneof=STANDARD MINI"`
	LastSubscriptionDate string `json:"last_subscription_date" validate:"required,datetime=2006-01-02"`
	NextSubscriptionDate string `json:"next_subscription_date" validate:"required,datetime=2006-01-02"`
	IsActive             *bool  `json:"is_active,omitempty"`
	AutoNotify           *bool  `json:"auto_notify,omitempty"`
}

// DummyPayment receives payment parameters for the mark-paid operations.
// An empty payment date means today; zero months means one.
type DummyPayment struct {
	PaymentDate string `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Months      int    `json:"months,omitempty" validate:"omitempty,gt=0"`
}

// DummyBulkPayment selects the subscribers for a bulk payment update.
type DummyBulkPayment struct {
	IDs         []int  `json:"ids" validate:"required,min=1"`
	PaymentDate string `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Months      int    `json:"months,omitempty" validate:"omitempty,gt=0"`
}

// DummyDeactivate carries the optional reason for a deactivation.
type DummyDeactivate struct {
	Reason string `json:"reason,omitempty"`
}

// DummyBulkDeactivate selects the subscribers for a bulk deactivation.
type DummyBulkDeactivate struct {
	IDs    []int  `json:"ids" validate:"required,min=1"`
	Reason string `json:"reason,omitempty"`
}

// DueNotice is the message published for every subscriber whose payment
// is due within the notification window. It carries everything the
// sender needs to build the reminder email.
type DueNotice struct {
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	KitType              KitType   `json:"kit_type"`
	LastSubscriptionDate time.Time `json:"last_subscription_date"`
	NextSubscriptionDate time.Time `json:"next_subscription_date"`
	DaysLeft             int       `json:"days_left"`
}

// SubscriberCounts aggregates the list-view statistics.
type SubscriberCounts struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	DueSoon     int `json:"due_soon"`
	Overdue     int `json:"overdue"`
	Deactivated int `json:"deactivated"`
}
