package model

// DashboardStats is the aggregate computed by the backend for the admin
// dashboard. The client performs no aggregation of its own.
type DashboardStats struct {
	TotalStudents        int              `json:"totalStudents"`
	ActiveCompanies      int              `json:"activeCompanies"`
	OpenInternships      int              `json:"openInternships"`
	TotalApplications    int              `json:"totalApplications"`
	PendingApplications  int              `json:"pendingApplications"`
	AcceptedApplications int              `json:"acceptedApplications"`
	RejectedApplications int              `json:"rejectedApplications"`
	RecentApplications   int              `json:"recentApplications"`
	TotalEnrollments     int              `json:"totalEnrollments"`
	PendingEnrollments   int              `json:"pendingEnrollments"`
	AcceptedEnrollments  int              `json:"acceptedEnrollments"`
	RejectedEnrollments  int              `json:"rejectedEnrollments"`
	RecentActivities     []RecentActivity `json:"recentActivities"`
	ApplicationTrends    []int            `json:"applicationTrends"`
	TrendLabels          []string         `json:"trendLabels"`
}

// RecentActivity is one dashboard activity-feed entry.
type RecentActivity struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	StudentName     string `json:"studentName"`
	InternshipTitle string `json:"internshipTitle"`
	Status          string `json:"status"`
	Date            string `json:"date"`
}
