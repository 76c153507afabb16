package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ems-labs/ems-backend-go/internal/domain/leave"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// GetPending implements LeaveHandler.
func (l *LeaveHandlerImpl) GetPending(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.GetPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter leave.RequestFilter

	if rawStatus := query.Get("status"); rawStatus != "" {
		status := leave.RequestStatus(rawStatus)
		filter.Status = &status
	}

	if rawID := query.Get("employee_id"); rawID != "" {
		employeeID, err := strconv.Atoi(rawID)
		if err != nil {
			response.BadRequest(w, "employee_id must be an integer", nil)
			return
		}
		filter.EmployeeID = &employeeID
	}

	requests, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.GetHistory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Leave request ID must be an integer", nil)
		return
	}

	var req leave.ApproveLeaveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Approve leave decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.LeaveID = id

	approved, err := l.leaveService.Approve(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Leave request ID must be an integer", nil)
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = id

	rejected, err := l.leaveService.Reject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", rejected)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		balance, err := l.leaveService.GetBalance(r.Context(), leave.LeaveType(rawType))
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, balance)
		return
	}

	balances, err := l.leaveService.GetBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}
