package repository

import (
	"context"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/store"
)

// DocumentReportRepository reads and writes per-user report documents
type DocumentReportRepository struct {
	store store.DocumentStore
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(s store.DocumentStore) ReportRepository {
	return &DocumentReportRepository{store: s}
}

// LoadReports returns one user's reports
func (r *DocumentReportRepository) LoadReports(ctx context.Context, username string) ([]models.Report, error) {
	var doc models.ReportDocument
	if err := r.store.Load(ctx, store.ReportsKey(username), &doc); err != nil {
		return nil, err
	}
	return doc.Reports, nil
}

// LoadAllReports merges the reports of the given users
func (r *DocumentReportRepository) LoadAllReports(ctx context.Context, usernames []string) ([]models.Report, error) {
	var all []models.Report
	for _, username := range usernames {
		reports, err := r.LoadReports(ctx, username)
		if err != nil {
			return nil, err
		}
		for _, report := range reports {
			report.Username = username
			all = append(all, report)
		}
	}
	return all, nil
}

// SaveReports overwrites one user's report list
func (r *DocumentReportRepository) SaveReports(ctx context.Context, username string, reports []models.Report) error {
	return r.store.Save(ctx, store.ReportsKey(username), models.ReportDocument{Reports: reports})
}
