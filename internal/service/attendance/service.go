package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/attendance"
	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
	"github.com/ems-labs/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-labs/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

// CalculateHours returns the worked hours between check-in and check-out,
// rounded to two decimals. Missing or inverted ranges count as zero.
func CalculateHours(checkIn, checkOut *time.Time) decimal.Decimal {
	if checkIn == nil || checkOut == nil {
		return decimal.Zero
	}

	minutes := checkOut.Sub(*checkIn).Minutes()
	if minutes < 0 {
		return decimal.Zero
	}

	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

// startOfDay truncates a timestamp to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, startOfDay(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	att, err := a.AttendanceRepository.CreateCheckIn(ctx, employeeID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return attendance.ToResponse(att), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, startOfDay(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil || att.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	totalHours := CalculateHours(att.CheckIn, &now)

	if err := a.AttendanceRepository.SetCheckOut(ctx, att.ID, now, totalHours); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	att.CheckOut = &now
	att.TotalHours = totalHours

	return attendance.ToResponse(*att), nil
}

// ManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	att := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
	}

	if req.CheckIn != nil && *req.CheckIn != "" {
		checkIn, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			}}
		}
		att.CheckIn = &checkIn
	}

	if req.CheckOut != nil && *req.CheckOut != "" {
		checkOut, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			}}
		}
		att.CheckOut = &checkOut
	}

	att.TotalHours = CalculateHours(att.CheckIn, att.CheckOut)

	saved, err := a.AttendanceRepository.Upsert(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save manual attendance entry: %w", err)
	}

	return attendance.ToResponse(saved), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, startOfDay(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*att)
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start, startValid := validator.IsValidDate(startDate)
	end, endValid := validator.IsValidDate(endDate)
	if !startValid || !endValid {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "start_date and end_date must be in YYYY-MM-DD format",
		}}
	}

	attendances, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.ToResponse(att))
	}

	return responses, nil
}

// GetReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.AttendanceResponse, error) {
	attendances, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.ToResponse(att))
	}

	return responses, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}
