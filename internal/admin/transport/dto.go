// Package transport defines the admin panel's request and response shapes.
package transport

// DashboardResponse carries the admin dashboard counters.
type DashboardResponse struct {
	TotalRides     int `json:"total_rides"`
	RidesToday     int `json:"rides_today"`
	UpcomingRides  int `json:"upcoming_rides"`
	ActiveRequests int `json:"active_requests"`
	RequestsToday  int `json:"requests_today"`
}

// SetActiveRequest toggles a listing's visibility.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SetFlaggedRequest flags or unflags a listing for review.
type SetFlaggedRequest struct {
	Flagged *bool `json:"flagged" validate:"required"`
}

// SetStatusRequest transitions a ride request's status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open fulfilled"`
}
