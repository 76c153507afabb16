package report

import (
	"context"
	"testing"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	gotMonth, gotYear int
	gotStart, gotEnd  *time.Time
	gotDepartment     *string
	monthlyCalls      int
	leaveSummaryCalls int
}

func (f *fakeReportRepo) GetMonthlyAttendance(ctx context.Context, month, year int, employeeID *int) ([]report.MonthlyAttendanceReport, error) {
	f.monthlyCalls++
	f.gotMonth = month
	f.gotYear = year
	return []report.MonthlyAttendanceReport{{EmployeeID: 1}}, nil
}

func (f *fakeReportRepo) GetLeaveSummaryByDepartment(ctx context.Context, startDate, endDate *time.Time, department *string) ([]report.LeaveSummaryReport, error) {
	f.leaveSummaryCalls++
	f.gotStart = startDate
	f.gotEnd = endDate
	f.gotDepartment = department
	return nil, nil
}

func TestReportService_GetMonthlyAttendance_RejectsBadMonth(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo)

	_, err := svc.GetMonthlyAttendance(context.Background(), report.MonthlyAttendanceRequest{
		Month: 13,
		Year:  2026,
	})
	assert.Error(t, err)
	assert.Zero(t, repo.monthlyCalls)
}

func TestReportService_GetMonthlyAttendance_PassesFilter(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo)

	reports, err := svc.GetMonthlyAttendance(context.Background(), report.MonthlyAttendanceRequest{
		Month: 3,
		Year:  2026,
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 3, repo.gotMonth)
	assert.Equal(t, 2026, repo.gotYear)
}

func TestReportService_GetLeaveSummary_ParsesDates(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo)

	startDate := "2026-01-01"
	department := "Engineering"
	_, err := svc.GetLeaveSummary(context.Background(), report.LeaveSummaryRequest{
		StartDate:  &startDate,
		Department: &department,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotStart)
	assert.Equal(t, 2026, repo.gotStart.Year())
	assert.Nil(t, repo.gotEnd)
	require.NotNil(t, repo.gotDepartment)
	assert.Equal(t, "Engineering", *repo.gotDepartment)
}

func TestReportService_GetLeaveSummary_RejectsBadDate(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo)

	startDate := "01/01/2026"
	_, err := svc.GetLeaveSummary(context.Background(), report.LeaveSummaryRequest{
		StartDate: &startDate,
	})
	assert.Error(t, err)
	assert.Zero(t, repo.leaveSummaryCalls)
}
