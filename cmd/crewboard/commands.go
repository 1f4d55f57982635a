package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crewboardhq/crewboard/internal/board"
	"github.com/crewboardhq/crewboard/internal/client"
	"github.com/crewboardhq/crewboard/internal/config"
	"github.com/crewboardhq/crewboard/internal/domain"
	"github.com/crewboardhq/crewboard/internal/notify"
)

type app struct {
	cfg      *config.Config
	api      *client.Client
	notifier *notify.Registry
}

// stageAliases maps CLI spellings to stages.
var stageAliases = map[string]domain.Stage{
	"backlog":     domain.StageBacklog,
	"todo":        domain.StageToDo,
	"to do":       domain.StageToDo,
	"inprogress":  domain.StageInProgress,
	"in progress": domain.StageInProgress,
	"review":      domain.StageReview,
	"completed":   domain.StageCompleted,
}

func parseStageArg(s string) (domain.Stage, error) {
	st, ok := stageAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown stage %q (backlog, todo, inprogress, review, completed)", s)
	}
	return st, nil
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

// loadBoard fetches a workspace's items and builds a populated store.
func (a *app) loadBoard(ctx context.Context, workspaceID int64) (*board.Store, error) {
	items, err := a.api.FetchBoard(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	store := board.NewStore()
	store.Load(items)
	return store, nil
}

func (a *app) board(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	query := fs.String("q", "", "filter items by title/description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: crewboard board [-q query] <workspace-id>")
	}
	workspaceID, err := parseID(fs.Arg(0), "workspace id")
	if err != nil {
		return err
	}

	store, err := a.loadBoard(ctx, workspaceID)
	if err != nil {
		return err
	}
	renderBoard(os.Stdout, store.FilteredView(*query))
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	query := fs.String("q", "", "filter items by title/description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: crewboard watch [-q query] <workspace-id>")
	}
	if a.cfg.Push.URL == "" {
		return errors.New("CREWBOARD_PUSH_URL is required for watch")
	}
	workspaceID, err := parseID(fs.Arg(0), "workspace id")
	if err != nil {
		return err
	}

	store, err := a.loadBoard(ctx, workspaceID)
	if err != nil {
		return err
	}
	renderBoard(os.Stdout, store.FilteredView(*query))

	// Any push event means "something changed": refetch the full board and
	// overwrite local state, unconfirmed optimistic moves included.
	handler := func(ctx context.Context, ev client.Event) {
		items, fetchErr := a.api.FetchBoard(ctx, workspaceID)
		if fetchErr != nil {
			log.Warn().Err(fetchErr).Str("event", ev.Type).Msg("refetch failed")
			a.notifier.Notify(ctx, notify.LevelError, "Board refresh failed")
			return
		}
		store.Load(items)
		renderBoard(os.Stdout, store.FilteredView(*query))
	}

	sub := client.NewSubscriber(a.cfg.Push.URL, handler,
		client.WithRefetchRate(a.cfg.Push.RefetchPerSecond, a.cfg.Push.RefetchBurst),
		client.WithReconnectBackoff(a.cfg.Push.MinBackoff, a.cfg.Push.MaxBackoff),
		client.WithSubscriberLogger(log.Logger),
	)

	if err := sub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) move(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	index := fs.Int("index", -1, "position within the destination stage (default: end)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return errors.New("usage: crewboard move [-index n] <workspace-id> <task-id> <stage>")
	}
	workspaceID, err := parseID(fs.Arg(0), "workspace id")
	if err != nil {
		return err
	}
	taskID, err := parseID(fs.Arg(1), "task id")
	if err != nil {
		return err
	}
	toStage, err := parseStageArg(fs.Arg(2))
	if err != nil {
		return err
	}

	store, err := a.loadBoard(ctx, workspaceID)
	if err != nil {
		return err
	}

	source, ok := findItem(store, taskID)
	if !ok {
		return fmt.Errorf("task %d not found in workspace %d", taskID, workspaceID)
	}

	toIndex := *index
	if toIndex < 0 {
		toIndex = len(store.View()[toStage])
	}
	destination := &board.Position{Stage: toStage, Index: toIndex}

	ctrl := board.NewController(store, a.api, a.notifier, log.Logger)
	if err := ctrl.HandleDrop(ctx, source, destination); err != nil {
		return err
	}

	fmt.Printf("task %d moved to %s\n", taskID, toStage)
	renderBoard(os.Stdout, store.View())
	return nil
}

// findItem locates a task on the board.
func findItem(store *board.Store, taskID int64) (board.Position, bool) {
	view := store.View()
	for _, st := range domain.Stages() {
		for i, it := range view[st] {
			if it.ID == taskID {
				return board.Position{Stage: st, Index: i}, true
			}
		}
	}
	return board.Position{}, false
}

var weekdaysByName = map[string]time.Weekday{
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
}

func (a *app) assign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	employee := fs.Int64("employee", 0, "assignee employee id")
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	workspace := fs.Int64("workspace", 0, "workspace id")
	workspaceName := fs.String("workspace-name", "", "workspace name")
	attachment := fs.String("attachment", "", "attachment file name")
	recur := fs.String("recur", "none", "recurrence: none, daily, weekly, monthly")
	days := fs.String("days", "", "weekly recurrence weekdays, e.g. mon,wed,fri")
	end := fs.String("end", "", "recurrence end date (YYYY-MM-DD)")
	monthlyDay := fs.Int("day", 0, "monthly recurrence day of month (default: due date's day)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rec := domain.Recurrence{
		Type:       domain.RecurrenceType(*recur),
		MonthlyDay: *monthlyDay,
		EndDate:    *end,
	}
	if *days != "" {
		for _, d := range strings.Split(*days, ",") {
			wd, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(d))]
			if !ok {
				return fmt.Errorf("unknown weekday %q", d)
			}
			rec.Weekdays = append(rec.Weekdays, wd)
		}
	}

	created, err := a.api.AssignTask(ctx, client.AssignTaskRequest{
		EmployeeID:    *employee,
		Title:         *title,
		Description:   *desc,
		DueDate:       *due,
		WorkspaceID:   *workspace,
		WorkspaceName: *workspaceName,
		Attachment:    *attachment,
		Recurrence:    rec,
	})
	if err != nil {
		return err
	}

	if created > 1 {
		fmt.Printf("assigned %d task instances\n", created)
	} else {
		fmt.Println("task assigned")
	}
	return nil
}

func (a *app) tasks(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: crewboard tasks <employee-id>")
	}
	employeeID, err := parseID(args[0], "employee id")
	if err != nil {
		return err
	}

	items, err := a.api.TasksForEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	renderTasks(os.Stdout, items)
	return nil
}

func (a *app) employees(ctx context.Context, _ []string) error {
	emps, err := a.api.ListEmployees(ctx)
	if err != nil {
		return err
	}
	renderEmployees(os.Stdout, emps)
	return nil
}

func (a *app) workspaces(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("workspaces", flag.ContinueOnError)
	mine := fs.Bool("mine", false, "only workspaces the session's employee belongs to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		spaces []domain.Workspace
		err    error
	)
	if *mine {
		spaces, err = a.api.EmployeeWorkspaces(ctx)
	} else {
		spaces, err = a.api.ListWorkspaces(ctx)
	}
	if err != nil {
		return err
	}

	for _, ws := range spaces {
		fmt.Printf("%d\t%s\n", ws.ID, ws.Name)
	}
	return nil
}

func (a *app) clock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clock", flag.ContinueOnError)
	address := fs.String("address", "", "location recorded with the punch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: crewboard clock [-address location] in|out")
	}

	switch fs.Arg(0) {
	case "in":
		if err := a.api.ClockIn(ctx, *address); err != nil {
			return err
		}
		fmt.Println("clocked in")
	case "out":
		if err := a.api.ClockOut(ctx, *address); err != nil {
			return err
		}
		fmt.Println("clocked out")
	default:
		return fmt.Errorf("unknown clock direction %q", fs.Arg(0))
	}
	return nil
}

func (a *app) leave(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: crewboard leave request|my|all|approve|reject")
	}

	switch args[0] {
	case "request":
		fs := flag.NewFlagSet("leave request", flag.ContinueOnError)
		leaveType := fs.String("type", "", "leave type (casual, sick, ...)")
		start := fs.String("start", "", "start date (YYYY-MM-DD)")
		end := fs.String("end", "", "end date (YYYY-MM-DD)")
		reason := fs.String("reason", "", "reason")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.api.RequestLeave(ctx, *leaveType, *start, *end, *reason); err != nil {
			return err
		}
		fmt.Println("leave requested")
		return nil
	case "my":
		leaves, err := a.api.MyLeaves(ctx)
		if err != nil {
			return err
		}
		renderLeaves(os.Stdout, leaves)
		return nil
	case "all":
		leaves, err := a.api.AllLeaves(ctx)
		if err != nil {
			return err
		}
		renderLeaves(os.Stdout, leaves)
		return nil
	case "approve", "reject":
		if len(args) != 2 {
			return fmt.Errorf("usage: crewboard leave %s <leave-id>", args[0])
		}
		leaveID, err := parseID(args[1], "leave id")
		if err != nil {
			return err
		}
		status := domain.LeaveApproved
		if args[0] == "reject" {
			status = domain.LeaveRejected
		}
		if err := a.api.UpdateLeave(ctx, leaveID, status); err != nil {
			return err
		}
		fmt.Printf("leave %d %s\n", leaveID, status)
		return nil
	default:
		return fmt.Errorf("unknown leave subcommand %q", args[0])
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "login email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("usage: crewboard login -email you@example.com")
	}

	fmt.Fprint(os.Stderr, "password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	if err := a.api.Login(ctx, *email, password); err != nil {
		return err
	}

	fmt.Printf("export CREWBOARD_TOKEN=%s\n", a.api.Session().Token())
	return nil
}
