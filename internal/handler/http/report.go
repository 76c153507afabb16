package http

import (
	"net/http"
	"strconv"

	"github.com/ems-labs/ems-backend-go/internal/domain/report"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyAttendance(w http.ResponseWriter, r *http.Request)
	LeaveSummary(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

// MonthlyAttendance implements ReportHandler.
func (h *ReportHandlerImpl) MonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be an integer", nil)
		return
	}

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	req := report.MonthlyAttendanceRequest{
		Month: month,
		Year:  year,
	}

	if rawID := query.Get("employee_id"); rawID != "" {
		employeeID, err := strconv.Atoi(rawID)
		if err != nil {
			response.BadRequest(w, "employee_id must be an integer", nil)
			return
		}
		req.EmployeeID = &employeeID
	}

	reports, err := h.reportService.GetMonthlyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// LeaveSummary implements ReportHandler.
func (h *ReportHandlerImpl) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var req report.LeaveSummaryRequest

	if startDate := query.Get("start_date"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		req.EndDate = &endDate
	}
	if department := query.Get("department"); department != "" {
		req.Department = &department
	}

	reports, err := h.reportService.GetLeaveSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}
