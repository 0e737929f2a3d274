package models

// KitTypeCounts breaks active subscribers down by kit type.
type KitTypeCounts struct {
	Standard int `json:"standard"`
	Mini     int `json:"mini"`
}

// SeverityCounts breaks overdue subscribers down by how far past due
// they are.
type SeverityCounts struct {
	Mild     int `json:"mild"`
	Moderate int `json:"moderate"`
	Severe   int `json:"severe"`
}

// SubscriberList is the list view payload: all subscribers plus their
// status counters.
type SubscriberList struct {
	Subscribers []*Subscriber    `json:"subscribers"`
	Counts      SubscriberCounts `json:"counts"`
}

// DueSoonReport lists the subscribers due within the window with their
// kit-type breakdown.
type DueSoonReport struct {
	Subscribers []*Subscriber `json:"subscribers"`
	KitTypes    KitTypeCounts `json:"kit_types"`
}

// OverdueReport lists the overdue subscribers with severity and kit
// breakdowns plus the estimated outstanding revenue.
type OverdueReport struct {
	Subscribers      []*Subscriber  `json:"subscribers"`
	Severity         SeverityCounts `json:"severity"`
	KitTypes         KitTypeCounts  `json:"kit_types"`
	EstimatedRevenue int            `json:"estimated_revenue"`
}

// BulkResult aggregates the outcome of a bulk operation: how many
// records were updated and any per-record errors. Missing ids are
// skipped silently and counted nowhere.
type BulkResult struct {
	UpdatedCount int      `json:"updated_count"`
	Errors       []string `json:"errors,omitempty"`
}

// DashboardStats is the aggregate snapshot shown on the dashboard.
type DashboardStats struct {
	Installations       InstallationCounts `json:"installations"`
	RecentInstallations []*Installation    `json:"recent_installations"`
	TotalActive         int                `json:"total_active"`
	DueSoon             int                `json:"due_soon"`
	Overdue             int                `json:"overdue"`
	Deactivated         int                `json:"deactivated"`
	KitTypes            KitTypeCounts      `json:"kit_types"`
}
