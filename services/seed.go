package services

import (
	"context"
	"fmt"
	"time"

	"transport-report-be/models"
	"transport-report-be/repository"
)

// DemoReports returns the sample reports shown on a fresh dashboard,
// timestamped relative to now.
func DemoReports(now time.Time) []models.IssueReport {
	route := func(start, end string) *models.ReportLocation {
		return &models.ReportLocation{StartStation: start, EndStation: end}
	}
	ago := func(h int) time.Time {
		return now.Add(-time.Duration(h) * time.Hour).UTC()
	}

	return []models.IssueReport{
		{
			ID:          "1",
			Type:        models.OverpricedFare,
			Title:       "Driver charging 50% extra fare",
			Description: "Bus driver at Downtown Station charging $5 instead of $3.50 for standard fare.",
			Status:      models.Pending,
			Priority:    models.High,
			ReportedBy:  models.AnonymousReporter,
			ReportedAt:  ago(2),
			Location:    route("Downtown Bus Station", "Central Market"),
		},
		{
			ID:          "2",
			Type:        models.PoorService,
			Title:       "Bus delayed by 45 minutes",
			Description: "Route 15 bus has been delayed for 45 minutes with no explanation or updates.",
			Status:      models.InProgress,
			Priority:    models.Medium,
			ReportedBy:  models.AnonymousReporter,
			ReportedAt:  ago(4),
			Location:    route("Central Station", "Uptown Terminal"),
		},
		{
			ID:          "3",
			Type:        models.GasStation,
			Title:       "Gas station out of fuel",
			Description: "The gas station at North Terminal has been out of fuel for 2 days.",
			Status:      models.Resolved,
			Priority:    models.High,
			ReportedBy:  models.AnonymousReporter,
			ReportedAt:  ago(24),
			Location:    route("North Terminal", "East Station"),
		},
		{
			ID:          "4",
			Type:        models.TrafficAccident,
			Title:       "Minor collision at intersection",
			Description: "Two buses had a minor collision at the intersection near South Terminal.",
			Status:      models.Urgent,
			Priority:    models.Critical,
			ReportedBy:  models.AnonymousReporter,
			ReportedAt:  ago(12),
			Location:    route("South Terminal", "West Station"),
		},
	}
}

// SeedDemoReports appends DemoReports when repo holds no reports yet.
// It returns how many reports were added.
func SeedDemoReports(ctx context.Context, repo repository.ReportRepository, now time.Time) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reports: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	demo := DemoReports(now)
	for _, r := range demo {
		if err := repo.Append(ctx, r); err != nil {
			return 0, fmt.Errorf("append demo report %s: %w", r.ID, err)
		}
	}
	return len(demo), nil
}
