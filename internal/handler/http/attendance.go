package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/attendance"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	att, err := a.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", att)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	att, err := a.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", att)
}

// GetToday implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	att, err := a.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, att)
}

// GetMyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDate := query.Get("start_date")
	endDate := query.Get("end_date")

	// Default to the current month.
	if startDate == "" || endDate == "" {
		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		startDate = firstOfMonth.Format("2006-01-02")
		endDate = firstOfMonth.AddDate(0, 1, -1).Format("2006-01-02")
	}

	attendances, err := a.attendanceService.GetMyAttendance(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendances)
}

// ManualEntry implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	att, err := a.attendanceService.ManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded successfully", att)
}

// GetReport implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDate, err := time.Parse("2006-01-02", query.Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
		return
	}

	endDate, err := time.Parse("2006-01-02", query.Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
		return
	}

	filter := attendance.ReportFilter{
		StartDate: startDate,
		EndDate:   endDate,
	}

	if rawID := query.Get("employee_id"); rawID != "" {
		employeeID, err := strconv.Atoi(rawID)
		if err != nil {
			response.BadRequest(w, "employee_id must be an integer", nil)
			return
		}
		filter.EmployeeID = &employeeID
	}

	if department := query.Get("department"); department != "" {
		filter.Department = &department
	}

	attendances, err := a.attendanceService.GetReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendances)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}
