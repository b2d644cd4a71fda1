package repository

import (
	"context"
	"sync"

	"transport-report-be/models"
)

// MemoryRepository keeps reports in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	reports []models.IssueReport
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(ctx context.Context, report models.IssueReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

// List returns a copy so callers can't mutate stored reports
func (r *MemoryRepository) List(ctx context.Context) ([]models.IssueReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.IssueReport, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (models.IssueReport, error) {
	if err := ctx.Err(); err != nil {
		return models.IssueReport{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.IssueReport{}, ErrReportNotFound
}
