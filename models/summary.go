package models

// DashboardSummary holds the counts shown on the dashboard. It is derived
// from a report snapshot and never persisted.
type DashboardSummary struct {
	TotalReports          int            `json:"totalReports"`
	PendingReports        int            `json:"pendingReports"`
	ResolvedReports       int            `json:"resolvedReports"`
	UrgentReports         int            `json:"urgentReports"`
	ReportsByType         map[string]int `json:"reportsByType"`
	ReportsByLocation     map[string]int `json:"reportsByLocation"`
	AverageResolutionTime float64        `json:"averageResolutionTime"`
}

// ResolutionRate returns the share of resolved reports as a percentage
func (s DashboardSummary) ResolutionRate() float64 {
	if s.TotalReports == 0 {
		return 0
	}
	return float64(s.ResolvedReports) / float64(s.TotalReports) * 100
}
