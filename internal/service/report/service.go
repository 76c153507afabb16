package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

// GetMonthlyAttendance implements report.ReportService.
func (r *ReportServiceImpl) GetMonthlyAttendance(ctx context.Context, req report.MonthlyAttendanceRequest) ([]report.MonthlyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reports, err := r.ReportRepository.GetMonthlyAttendance(ctx, req.Month, req.Year, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly attendance report: %w", err)
	}

	return reports, nil
}

// GetLeaveSummary implements report.ReportService.
func (r *ReportServiceImpl) GetLeaveSummary(ctx context.Context, req report.LeaveSummaryRequest) ([]report.LeaveSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var startDate, endDate *time.Time
	if req.StartDate != nil && *req.StartDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.StartDate)
		startDate = &parsed
	}
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		endDate = &parsed
	}

	reports, err := r.ReportRepository.GetLeaveSummaryByDepartment(ctx, startDate, endDate, req.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to build leave summary report: %w", err)
	}

	return reports, nil
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
	}
}
