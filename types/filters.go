package types

import "time"

// BookingFilter narrows booking searches and stats. Empty fields are ignored.
type BookingFilter struct {
	GuestID    string
	HostID     string
	PropertyID string
	Status     string
	From       *time.Time
	To         *time.Time

	// ParticipantID restricts results to bookings where the user is guest or host.
	ParticipantID string
}

// BookingStats aggregates bookings within a scope.
type BookingStats struct {
	Total     int64   `json:"total"`
	Active    int64   `json:"active"`
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// PropertyFilter narrows catalog listings.
type PropertyFilter struct {
	Query    string
	Category string
	HostID   string
}

// RatingSummary is the aggregate rating of a property.
type RatingSummary struct {
	AverageRating float64            `json:"averageRating"`
	TotalReviews  int                `json:"totalReviews"`
	Categories    map[string]float64 `json:"categories"`
}
