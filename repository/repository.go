// Package repository stores issue reports. Reports are append-only: there
// is no update or delete path.
package repository

import (
	"context"
	"errors"

	"transport-report-be/models"
)

// ReportsKey names the collection or list that holds every report
const ReportsKey = "transport_reports"

var ErrReportNotFound = errors.New("report not found")

// ReportRepository is implemented by every report backend.
// List returns reports in the order they were appended.
type ReportRepository interface {
	Append(ctx context.Context, report models.IssueReport) error
	List(ctx context.Context) ([]models.IssueReport, error)
	FindByID(ctx context.Context, id string) (models.IssueReport, error)
}
