package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crewboardhq/crewboard/internal/domain"
)

// AssigneeTasks is one group of the per-assignee task listing.
type AssigneeTasks struct {
	EmployeeID int64             `json:"employee_id"`
	Name       string            `json:"name"`
	Tasks      []domain.WorkItem `json:"tasks"`
}

// AllTasks retrieves every task, grouped by assignee.
func (c *Client) AllTasks(ctx context.Context) ([]AssigneeTasks, error) {
	var resp dataResponse[[]AssigneeTasks]
	if err := c.do(ctx, http.MethodGet, "/task/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchBoard retrieves all tasks across all assignees, flattens them with
// the assignee's display name and id attached, and keeps only the items
// belonging to workspaceID. The result feeds the board store's Load.
func (c *Client) FetchBoard(ctx context.Context, workspaceID int64) ([]domain.WorkItem, error) {
	groups, err := c.AllTasks(ctx)
	if err != nil {
		return nil, err
	}

	var items []domain.WorkItem
	for _, grp := range groups {
		for _, t := range grp.Tasks {
			if t.WorkspaceID != workspaceID {
				continue
			}
			t.EmployeeID = grp.EmployeeID
			t.AssigneeName = grp.Name
			items = append(items, t)
		}
	}
	return items, nil
}

// TasksForEmployee returns one employee's tasks from the grouped listing.
func (c *Client) TasksForEmployee(ctx context.Context, employeeID int64) ([]domain.WorkItem, error) {
	groups, err := c.AllTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, grp := range groups {
		if grp.EmployeeID == employeeID {
			return grp.Tasks, nil
		}
	}
	return nil, fmt.Errorf("client.TasksForEmployee: employee %d: %w", employeeID, domain.ErrNotFound)
}

type updateStatusRequest struct {
	TaskID      int64  `json:"taskId"`
	IsCompleted bool   `json:"is_completed"`
	Status      string `json:"status"`
}

// UpdateTaskStatus persists a stage change. No payload is consumed on
// success.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int64, completed bool, status string) error {
	req := updateStatusRequest{TaskID: taskID, IsCompleted: completed, Status: status}
	return c.do(ctx, http.MethodPost, "/task/update-status", req, nil)
}

// AssignTaskRequest describes a task to create. Recurrence is validated
// client-side before anything is sent.
type AssignTaskRequest struct {
	EmployeeID    int64
	Title         string
	Description   string
	DueDate       string
	WorkspaceID   int64
	WorkspaceName string
	Attachment    string
	Recurrence    domain.Recurrence
}

type assignTaskRequest struct {
	EmployeeID     int64   `json:"employee_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	DueDate        string  `json:"due_date"`
	WorkspaceID    int64   `json:"workspace_id"`
	WorkspaceName  string  `json:"workspace_name,omitempty"`
	Attachment     string  `json:"attachment,omitempty"`
	RecurrenceType string  `json:"recurrence_type"`
	RecurrenceDays *string `json:"recurrence_days"`
	RecurrenceEnd  *string `json:"recurrence_end_date"`
	MonthlyDay     *int    `json:"monthly_day"`
}

type assignTaskResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created,omitempty"`
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// AssignTask creates a task, returning the number of task instances the
// server created (recurring tasks expand to several). ValidationErrors are
// reported before any request goes out.
func (c *Client) AssignTask(ctx context.Context, req AssignTaskRequest) (int, error) {
	if req.Title == "" {
		return 0, fmt.Errorf("client.AssignTask: title is required: %w", domain.ErrValidation)
	}
	if req.EmployeeID == 0 {
		return 0, fmt.Errorf("client.AssignTask: employee is required: %w", domain.ErrValidation)
	}
	if req.DueDate == "" {
		return 0, fmt.Errorf("client.AssignTask: due date is required: %w", domain.ErrValidation)
	}

	rec := req.Recurrence
	if rec.Type == "" {
		rec.Type = domain.RecurrenceNone
	}
	if rec.Type == domain.RecurrenceMonthly && rec.MonthlyDay == 0 {
		rec.MonthlyDay = domain.DefaultMonthlyDay(req.DueDate)
	}
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("client.AssignTask: %w", err)
	}

	wire := assignTaskRequest{
		EmployeeID:     req.EmployeeID,
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		WorkspaceID:    req.WorkspaceID,
		WorkspaceName:  req.WorkspaceName,
		Attachment:     req.Attachment,
		RecurrenceType: string(rec.Type),
	}
	if rec.Type != domain.RecurrenceNone {
		wire.RecurrenceEnd = &rec.EndDate
	}
	if rec.Type == domain.RecurrenceWeekly {
		days := make([]string, 0, len(rec.Weekdays))
		for _, d := range rec.Weekdays {
			days = append(days, weekdayLabels[d])
		}
		joined := strings.Join(days, ",")
		wire.RecurrenceDays = &joined
	}
	if rec.Type == domain.RecurrenceMonthly {
		wire.MonthlyDay = &rec.MonthlyDay
	}

	var resp assignTaskResponse
	if err := c.do(ctx, http.MethodPost, "/task/assignTask", wire, &resp); err != nil {
		return 0, err
	}
	return resp.Created, nil
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.do(ctx, http.MethodDelete, "/task/"+strconv.FormatInt(taskID, 10), nil, nil)
}
