package models

// DashboardStats is the server-side aggregate shown on the dashboard.
type DashboardStats struct {
	TotalTrucks       int       `json:"totalTrucks"`
	ServicesThisMonth int       `json:"servicesThisMonth"`
	ValueThisMonth    Amount    `json:"valueThisMonth"`
	PendingServices   int       `json:"pendingServices"`
	RecentServices    []Service `json:"recentServices"`
}
