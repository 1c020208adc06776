package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var ErrReportNotFound = errors.New("日報が見つかりません")

// ReportService handles per-user daily reports
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo}
}

// List returns one user's reports, newest date first
func (s *ReportService) List(ctx context.Context, username string) ([]models.Report, error) {
	reports, err := s.reportRepo.LoadReports(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	sortReportsByDateDesc(reports)
	return reports, nil
}

// AddReportInput represents input for creating a report
type AddReportInput struct {
	Username string
	Date     string
	Projects []models.ReportProject
}

// Add appends a report to the user's list
func (s *ReportService) Add(ctx context.Context, input AddReportInput) (*models.Report, error) {
	reports, err := s.reportRepo.LoadReports(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	report := models.Report{
		ID:        uuid.NewString(),
		Date:      input.Date,
		Projects:  emptyProjectsIfNil(input.Projects),
		CreatedAt: now,
		UpdatedAt: now,
	}

	reports = append(reports, report)
	if err := s.reportRepo.SaveReports(ctx, input.Username, reports); err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReportInput represents input for updating a report. Nil fields
// keep the stored value.
type UpdateReportInput struct {
	Username string
	ID       string
	Date     *string
	Projects []models.ReportProject
}

// Update modifies one report and refreshes its updated-at stamp
func (s *ReportService) Update(ctx context.Context, input UpdateReportInput) (*models.Report, error) {
	reports, err := s.reportRepo.LoadReports(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	for i := range reports {
		if reports[i].ID != input.ID {
			continue
		}
		report := &reports[i]
		if input.Date != nil {
			report.Date = *input.Date
		}
		if input.Projects != nil {
			report.Projects = input.Projects
		}
		report.UpdatedAt = time.Now().Format(time.RFC3339)
		if err := s.reportRepo.SaveReports(ctx, input.Username, reports); err != nil {
			return nil, err
		}
		return report, nil
	}

	return nil, ErrReportNotFound
}

// Delete removes one report from the user's list
func (s *ReportService) Delete(ctx context.Context, username, id string) error {
	reports, err := s.reportRepo.LoadReports(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	kept := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		if report.ID != id {
			kept = append(kept, report)
		}
	}
	return s.reportRepo.SaveReports(ctx, username, kept)
}

// ByDate returns the user's reports filed for one calendar date
func (s *ReportService) ByDate(ctx context.Context, username, date string) ([]models.Report, error) {
	reports, err := s.reportRepo.LoadReports(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	matched := []models.Report{}
	for _, report := range reports {
		if report.Date == date {
			matched = append(matched, report)
		}
	}
	return matched, nil
}

// All merges every user's reports, stamped with the owner's username,
// newest date first
func (s *ReportService) All(ctx context.Context) ([]models.Report, error) {
	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	usernames := make([]string, 0, len(users))
	for username := range users {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	reports, err := s.reportRepo.LoadAllReports(ctx, usernames)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	sortReportsByDateDesc(reports)
	return reports, nil
}

func sortReportsByDateDesc(reports []models.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date > reports[j].Date
	})
}

func emptyProjectsIfNil(projects []models.ReportProject) []models.ReportProject {
	if projects == nil {
		return []models.ReportProject{}
	}
	return projects
}
