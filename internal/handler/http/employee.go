package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	employees, err := e.employeeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Employee ID must be an integer", nil)
		return
	}

	emp, err := e.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Create implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := e.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// Update implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Employee ID must be an integer", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	updated, err := e.employeeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Employee ID must be an integer", nil)
		return
	}

	if err := e.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated successfully", nil)
}

// Search implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		response.BadRequest(w, "Search keyword is required", nil)
		return
	}

	employees, err := e.employeeService.Search(r.Context(), keyword)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// ListDepartments implements EmployeeHandler.
func (e *EmployeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := e.employeeService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}
