package domain

import "strings"

// Stage is one of the five fixed board columns, in on-screen order.
type Stage int

const (
	StageBacklog Stage = iota
	StageToDo
	StageInProgress
	StageReview
	StageCompleted
)

// NumStages is the number of board columns. The set is fixed; the server
// has no notion of columns beyond the status text.
const NumStages = 5

var stageNames = [NumStages]string{"Backlog", "To Do", "In Progress", "Review", "Completed"}

// stageLabels are the wire values sent on status updates.
var stageLabels = [NumStages]string{"backlog", "to do", "in progress", "review", "completed"}

// Stages returns all stages in board order.
func Stages() []Stage {
	return []Stage{StageBacklog, StageToDo, StageInProgress, StageReview, StageCompleted}
}

// Valid reports whether s is one of the five defined stages.
func (s Stage) Valid() bool {
	return s >= StageBacklog && s <= StageCompleted
}

func (s Stage) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stageNames[s]
}

// StatusLabel returns the status string persisted for items in this stage.
func (s Stage) StatusLabel() string {
	if !s.Valid() {
		return stageLabels[StageBacklog]
	}
	return stageLabels[s]
}

// Completed reports whether items in this stage carry the derived
// is_completed flag. Only the Completed stage does.
func (s Stage) Completed() bool {
	return s == StageCompleted
}

// ClassifyStage maps a server-side status string to a stage. Matching is a
// case-insensitive substring check against the stage labels, in priority
// order Backlog, To Do, In Progress, Review, Completed. Anything that
// matches nothing, including an empty status, lands in Backlog.
func ClassifyStage(status string) Stage {
	lower := strings.ToLower(status)
	for _, s := range Stages() {
		if strings.Contains(lower, stageLabels[s]) {
			return s
		}
	}
	return StageBacklog
}

// WorkItem is a unit of assignable work. The JSON tags mirror the remote
// API's task payload; AssigneeName and EmployeeID are attached client-side
// from the per-assignee grouping of the task listing.
type WorkItem struct {
	ID          int64  `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// DueDate is a calendar date in the server's YYYY-MM-DD form.
	// Empty means unscheduled.
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status,omitempty"`
	Completed   bool   `json:"completed"`
	WorkspaceID int64  `json:"workspace_id"`

	EmployeeID   int64  `json:"employee_id,omitempty"`
	AssigneeName string `json:"employee_name,omitempty"`
}

// Stage classifies the item by its server-side status string.
func (w WorkItem) Stage() Stage {
	return ClassifyStage(w.Status)
}

// Matches reports whether the item's title or description contains query,
// case-insensitively. The empty query matches everything.
func (w WorkItem) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(w.Title), q) ||
		strings.Contains(strings.ToLower(w.Description), q)
}
