package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := e.EmployeeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return toResponses(employees), nil
}

// Get implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id int) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Create implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Department:  req.Department,
		Designation: req.Designation,
		Status:      employee.StatusActive,
		Email:       req.Email,
		Phone:       req.Phone,
	}

	if req.JoinDate != nil && *req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", *req.JoinDate)
		if err == nil {
			emp.JoinDate = &joinDate
		}
	}

	created, err := e.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

// Update implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Update(ctx context.Context, id int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.FirstName = req.FirstName
	emp.LastName = req.LastName
	emp.Department = req.Department
	emp.Designation = req.Designation
	emp.Email = req.Email
	emp.Phone = req.Phone
	emp.Status = employee.Status(req.Status)

	if req.JoinDate != nil && *req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", *req.JoinDate)
		if err == nil {
			emp.JoinDate = &joinDate
		}
	}

	if err := e.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Delete implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Delete(ctx context.Context, id int) error {
	return e.EmployeeRepository.Delete(ctx, id)
}

// Search implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Search(ctx context.Context, keyword string) ([]employee.EmployeeResponse, error) {
	employees, err := e.EmployeeRepository.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}

	return toResponses(employees), nil
}

// ListDepartments implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ListDepartments(ctx context.Context) ([]string, error) {
	departments, err := e.EmployeeRepository.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, nil
}

func toResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
	}
}
