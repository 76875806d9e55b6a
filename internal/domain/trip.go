// Package domain contains the core data types for the roamwyth API.
// This package has zero internal dependencies and is imported by every other
// internal package (policy, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a user-owned journey, planned or past.
//
// StartDate and EndDate are calendar dates (the time-of-day is meaningless);
// either, both or neither may be set. When IsFlexibleDates is true the trip
// may carry FlexibleMonth ("September 2013") instead of exact dates.
// OwnerID never changes after creation.
type Trip struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	Name             string     `json:"name"`
	Destination      string     `json:"destination"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsFlexibleDates  bool       `json:"is_flexible_dates"`
	FlexibleMonth    string     `json:"flexible_month,omitempty"`
	IsLoggedPastTrip bool       `json:"is_logged_past_trip"`
	Visibility       Visibility `json:"visibility"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TemporalCategory is the derived display bucket of a trip relative to today.
// It is computed on every read and never stored.
type TemporalCategory string

const (
	CategoryCurrent  TemporalCategory = "current"
	CategoryUpcoming TemporalCategory = "upcoming"
	CategoryPast     TemporalCategory = "past"
	CategoryUndated  TemporalCategory = "undated"
)

// TripGroups is a trip list bucketed by TemporalCategory, each bucket already
// in display order. Buckets are never nil.
type TripGroups[T any] struct {
	Current  []T `json:"current"`
	Upcoming []T `json:"upcoming"`
	Past     []T `json:"past"`
	Undated  []T `json:"undated"`
}
