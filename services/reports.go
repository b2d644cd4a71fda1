package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"transport-report-be/models"
	"transport-report-be/repository"
	"transport-report-be/utils"

	"go.uber.org/zap"
)

// SubmitReportInput is the report form as sent by the client
type SubmitReportInput struct {
	Type         string        `json:"type" validate:"required,oneof=overpriced_fare poor_service gas_station traffic_accident"`
	Title        string        `json:"title" validate:"required,min=5,max=200"`
	Description  string        `json:"description" validate:"required,min=20,max=2000"`
	StartStation string        `json:"startStation" validate:"required_without=Address"`
	EndStation   string        `json:"endStation" validate:"required_without=Address"`
	Address      string        `json:"address"`
	Latitude     *float64      `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64      `json:"longitude" validate:"omitempty,longitude"`
	Priority     string        `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ContactInfo  *ContactInput `json:"contactInfo" validate:"omitempty"`
}

type ContactInput struct {
	Phone string `json:"phone" validate:"omitempty,max=32"`
	Email string `json:"email" validate:"omitempty,email"`
}

// SubmissionError wraps any failure after validation passed. The form
// state is kept by the client so it can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "Failed to submit report. Please try again."
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// idGenerator derives report ids from the Unix millisecond clock. Ids are
// strictly increasing within one process; other processes may collide.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *idGenerator) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// ReportService validates, stores and reads issue reports. Every
// repository access runs through utils.Call with the configured timeout.
type ReportService struct {
	repo    repository.ReportRepository
	timeout time.Duration
	log     *zap.Logger
	ids     idGenerator
	now     func() time.Time
}

func NewReportService(repo repository.ReportRepository, timeout time.Duration, log *zap.Logger) *ReportService {
	return &ReportService{
		repo:    repo,
		timeout: timeout,
		log:     log.With(zap.String("component", "reports")),
		now:     time.Now,
	}
}

// Submit validates input, builds a pending anonymous report and appends it
func (s *ReportService) Submit(ctx context.Context, input SubmitReportInput) (models.IssueReport, error) {
	if err := Validate(input); err != nil {
		return models.IssueReport{}, err
	}

	report := buildReport(input, s.now())
	report.ID = s.ids.next(report.ReportedAt)

	_, err := utils.Call(ctx, s.timeout, "append report", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.Append(ctx, report)
	})
	if err != nil {
		s.log.Error("report submission failed", zap.String("report_id", report.ID), zap.Error(err))
		return models.IssueReport{}, &SubmissionError{Err: err}
	}

	s.log.Info("report submitted",
		zap.String("report_id", report.ID),
		zap.String("type", string(report.Type)),
		zap.String("priority", string(report.Priority)))
	return report, nil
}

func buildReport(input SubmitReportInput, now time.Time) models.IssueReport {
	priority := models.IssuePriority(input.Priority)
	if priority == "" {
		priority = models.Medium
	}

	report := models.IssueReport{
		Type:        models.IssueCategory(input.Type),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.Pending,
		Priority:    priority,
		ReportedBy:  models.AnonymousReporter,
		ReportedAt:  now.UTC(),
	}

	loc := &models.ReportLocation{
		StartStation: input.StartStation,
		EndStation:   input.EndStation,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if *loc != (models.ReportLocation{}) {
		report.Location = loc
	}

	if c := input.ContactInfo; c != nil && (c.Phone != "" || c.Email != "") {
		report.ContactInfo = &models.ContactInfo{Phone: c.Phone, Email: c.Email}
	}
	return report
}

// List returns every stored report in submission order
func (s *ReportService) List(ctx context.Context) ([]models.IssueReport, error) {
	return utils.Call(ctx, s.timeout, "list reports", s.repo.List)
}

// Find returns the report with the given id or repository.ErrReportNotFound
func (s *ReportService) Find(ctx context.Context, id string) (models.IssueReport, error) {
	return utils.Call(ctx, s.timeout, "find report", func(ctx context.Context) (models.IssueReport, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Dashboard is the data behind the dashboard view
type Dashboard struct {
	Stats          models.DashboardSummary `json:"stats"`
	ResolutionRate float64                 `json:"resolutionRate"`
	CategoryLabels map[string]string       `json:"categoryLabels"`
	Reports        []models.IssueReport    `json:"reports"`
}

// Dashboard summarizes every report and lists the ones matching search
// and status. Stats always cover the full snapshot.
func (s *ReportService) Dashboard(ctx context.Context, search, status string) (Dashboard, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	stats := Summarize(reports)
	labels := make(map[string]string, len(models.Categories))
	for _, c := range models.Categories {
		labels[string(c)] = c.Label()
	}

	return Dashboard{
		Stats:          stats,
		ResolutionRate: stats.ResolutionRate(),
		CategoryLabels: labels,
		Reports:        Filter(reports, search, status),
	}, nil
}

// IsNotFound reports whether err means the requested report does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrReportNotFound)
}
