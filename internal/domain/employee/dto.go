package employee

import (
	"github.com/ems-labs/ems-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	JoinDate    *string `json:"join_date,omitempty"` // YYYY-MM-DD
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Designation) {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if r.JoinDate != nil && *r.JoinDate != "" {
		if _, valid := validator.IsValidDate(*r.JoinDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID          int     `json:"-"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	JoinDate    *string `json:"join_date,omitempty"`
	Status      string  `json:"status"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if r.Status != string(StatusActive) && r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if r.JoinDate != nil && *r.JoinDate != "" {
		if _, valid := validator.IsValidDate(*r.JoinDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID          int     `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	JoinDate    *string `json:"join_date,omitempty"`
	Status      string  `json:"status"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		FullName:    e.FullName(),
		Department:  e.Department,
		Designation: e.Designation,
		Status:      string(e.Status),
		Email:       e.Email,
		Phone:       e.Phone,
	}
	if e.JoinDate != nil {
		joinDate := e.JoinDate.Format("2006-01-02")
		resp.JoinDate = &joinDate
	}
	return resp
}
