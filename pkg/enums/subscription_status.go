package enums

import "fmt"

// SubscriptionStatus models the billing lifecycle of a subscription.
//
// Allowed transitions: trial -> active, active -> overdue|canceled,
// overdue -> active|canceled. Canceled is terminal. Only active
// subscriptions count toward recurring revenue.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusOverdue  SubscriptionStatus = "overdue"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

var validSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusTrial,
	SubscriptionStatusActive,
	SubscriptionStatusOverdue,
	SubscriptionStatusCanceled,
}

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusTrial:    {SubscriptionStatusActive, SubscriptionStatusCanceled},
	SubscriptionStatusActive:   {SubscriptionStatusOverdue, SubscriptionStatusCanceled},
	SubscriptionStatusOverdue:  {SubscriptionStatusActive, SubscriptionStatusCanceled},
	SubscriptionStatusCanceled: {},
}

// String implements fmt.Stringer.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s SubscriptionStatus) IsValid() bool {
	for _, candidate := range validSubscriptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether moving to the target status is allowed.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, candidate := range subscriptionTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseSubscriptionStatus converts raw input into a SubscriptionStatus.
func ParseSubscriptionStatus(value string) (SubscriptionStatus, error) {
	for _, candidate := range validSubscriptionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription status %q", value)
}
