package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/attendance"
	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, userID, employeeID int) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":     userID,
		"username":    "tester",
		"employee_id": employeeID,
		"role":        "Employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance), nextID: 1}
}

func key(employeeID int, date time.Time) string {
	return fmt.Sprintf("%d/%s", employeeID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) CreateCheckIn(ctx context.Context, employeeID int, checkIn time.Time) (attendance.Attendance, error) {
	date := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	att := attendance.Attendance{
		ID:         f.nextID,
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
	}
	f.nextID++
	f.records[key(employeeID, date)] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id int, checkOut time.Time, totalHours decimal.Decimal) error {
	for _, att := range f.records {
		if att.ID == id {
			att.CheckOut = &checkOut
			att.TotalHours = totalHours
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	existing, ok := f.records[key(att.EmployeeID, att.Date)]
	if ok {
		att.ID = existing.ID
	} else {
		att.ID = f.nextID
		f.nextID++
	}
	f.records[key(att.EmployeeID, att.Date)] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		out = append(out, *att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID int, startDate, endDate time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(startDate) && !att.Date.After(endDate) {
			out = append(out, *att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[int]employee.Employee
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id int) error                { return nil }

func (f *fakeEmployeeRepo) Search(ctx context.Context, keyword string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListDepartments(ctx context.Context) ([]string, error) { return nil, nil }

func TestCalculateHours(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) *time.Time {
		ts := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		return &ts
	}

	tests := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
		want     string
	}{
		{"full working day", at(9, 0), at(17, 30), "8.5"},
		{"uneven minutes round to two decimals", at(9, 0), at(17, 20), "8.33"},
		{"same instant", at(9, 0), at(9, 0), "0"},
		{"missing check-in", nil, at(17, 0), "0"},
		{"missing check-out", at(9, 0), nil, "0"},
		{"inverted range clamps to zero", at(17, 0), at(9, 0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHours(tt.checkIn, tt.checkOut)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})
	ctx := authedContext(t, 1, 7)

	resp, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, resp.EmployeeID)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
}

func TestAttendanceService_CheckIn_Duplicate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})
	ctx := authedContext(t, 1, 7)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})
	ctx := authedContext(t, 1, 7)

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})
	ctx := authedContext(t, 1, 7)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_ManualEntry_ComputesHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[int]employee.Employee{
		3: {ID: 3, FirstName: "Dana", LastName: "Lee"},
	}}
	svc := NewAttendanceService(repo, empRepo)

	checkIn := "2026-03-02T09:00:00Z"
	checkOut := "2026-03-02T17:30:00Z"
	resp, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: 3,
		Date:       "2026-03-02",
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Status:     "Present",
	})
	require.NoError(t, err)

	assert.Equal(t, "8.50", resp.TotalHours)
	assert.Equal(t, "2026-03-02", resp.Date)
}

func TestAttendanceService_ManualEntry_OverwritesExisting(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[int]employee.Employee{
		3: {ID: 3, FirstName: "Dana", LastName: "Lee"},
	}}
	svc := NewAttendanceService(repo, empRepo)

	first, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: 3,
		Date:       "2026-03-02",
		Status:     "Absent",
	})
	require.NoError(t, err)

	second, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: 3,
		Date:       "2026-03-02",
		Status:     "Half-day",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Half-day", second.Status)
}

func TestAttendanceService_ManualEntry_UnknownEmployee(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})

	_, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: 99,
		Date:       "2026-03-02",
		Status:     "Present",
	})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestAttendanceService_ManualEntry_InvalidStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})

	_, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: 3,
		Date:       "2026-03-02",
		Status:     "Late",
	})
	assert.Error(t, err)
}
