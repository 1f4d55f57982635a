package domain

// Employee is one directory entry.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// Workspace is one project board container.
type Workspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AttendanceRecord is one employee-day of clock activity. Clock fields are
// empty until the matching punch happens.
type AttendanceRecord struct {
	EmployeeID      int64  `json:"employee_id"`
	EmployeeName    string `json:"employee_name,omitempty"`
	Date            string `json:"date"`
	ClockIn         string `json:"clock_in,omitempty"`
	ClockOut        string `json:"clock_out,omitempty"`
	ClockInAddress  string `json:"clock_in_address,omitempty"`
	ClockOutAddress string `json:"clock_out_address,omitempty"`
	Status          string `json:"status,omitempty"`
}

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is one leave application.
type LeaveRequest struct {
	ID           int64       `json:"leave_id"`
	EmployeeID   int64       `json:"employee_id,omitempty"`
	EmployeeName string      `json:"employee_name,omitempty"`
	Type         string      `json:"type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Reason       string      `json:"reason,omitempty"`
	Status       LeaveStatus `json:"status"`
}
