package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crewboardhq/crewboard/internal/domain"
)

// ListEmployees retrieves the employee directory.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var resp dataResponse[[]domain.Employee]
	if err := c.do(ctx, http.MethodGet, "/employee/getEmployees", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetEmployee retrieves one employee by id.
func (c *Client) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var resp dataResponse[domain.Employee]
	if err := c.do(ctx, http.MethodGet, "/employee/getEmployeeById/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListWorkspaces retrieves all workspaces visible to the session.
func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	var resp dataResponse[[]domain.Workspace]
	if err := c.do(ctx, http.MethodGet, "/workspaces", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// EmployeeWorkspaces retrieves the workspaces the logged-in employee
// belongs to.
func (c *Client) EmployeeWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	var resp dataResponse[[]domain.Workspace]
	if err := c.do(ctx, http.MethodGet, "/workspaces/emp/workspace", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type clockRequest struct {
	Address string `json:"address,omitempty"`
}

// ClockIn records the start of the employee's working day.
func (c *Client) ClockIn(ctx context.Context, address string) error {
	return c.do(ctx, http.MethodPost, "/attendance/clock-in", clockRequest{Address: address}, nil)
}

// ClockOut records the end of the employee's working day.
func (c *Client) ClockOut(ctx context.Context, address string) error {
	return c.do(ctx, http.MethodPost, "/attendance/clock-out", clockRequest{Address: address}, nil)
}

// EmployeeAttendance retrieves one employee's attendance records.
func (c *Client) EmployeeAttendance(ctx context.Context, employeeID int64) ([]domain.AttendanceRecord, error) {
	path := "/attendance/admin/get-particular-attendance?employee_id=" + strconv.FormatInt(employeeID, 10)
	var resp dataResponse[[]domain.AttendanceRecord]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AllEmployeeAttendance retrieves every employee's attendance for a date
// (YYYY-MM-DD).
func (c *Client) AllEmployeeAttendance(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
	path := "/attendance/admin/all-employee-attendance?date=" + url.QueryEscape(date)
	var resp dataResponse[[]domain.AttendanceRecord]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type leaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// RequestLeave submits a leave application for the logged-in employee.
// Dates are validated client-side before the request goes out.
func (c *Client) RequestLeave(ctx context.Context, leaveType, startDate, endDate, reason string) error {
	if leaveType == "" || startDate == "" || endDate == "" {
		return fmt.Errorf("client.RequestLeave: type and dates are required: %w", domain.ErrValidation)
	}
	if endDate < startDate {
		return fmt.Errorf("client.RequestLeave: end date before start date: %w", domain.ErrValidation)
	}
	req := leaveRequest{Type: leaveType, StartDate: startDate, EndDate: endDate, Reason: reason}
	return c.do(ctx, http.MethodPost, "/leave", req, nil)
}

// MyLeaves retrieves the logged-in employee's leave requests.
func (c *Client) MyLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	var resp dataResponse[[]domain.LeaveRequest]
	if err := c.do(ctx, http.MethodGet, "/leave/my", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AllLeaves retrieves every employee's leave requests (admin view).
func (c *Client) AllLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	var resp dataResponse[[]domain.LeaveRequest]
	if err := c.do(ctx, http.MethodGet, "/leave/get", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type updateLeaveRequest struct {
	Status domain.LeaveStatus `json:"status"`
}

// UpdateLeave approves or rejects a leave request.
func (c *Client) UpdateLeave(ctx context.Context, leaveID int64, status domain.LeaveStatus) error {
	if status != domain.LeaveApproved && status != domain.LeaveRejected {
		return fmt.Errorf("client.UpdateLeave: status must be approved or rejected: %w", domain.ErrValidation)
	}
	return c.do(ctx, http.MethodPut, "/leave/update/"+strconv.FormatInt(leaveID, 10), updateLeaveRequest{Status: status}, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on the
// session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/employee/login/web", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("client.Login: %w: empty token in response", ErrServer)
	}
	c.session.SetToken(resp.Token)
	return nil
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword rotates the logged-in employee's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("client.ChangePassword: new password is required: %w", domain.ErrValidation)
	}
	req := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/auth/change-password", req, nil)
}
