package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crewboardhq/crewboard/internal/client"
	"github.com/crewboardhq/crewboard/internal/config"
	"github.com/crewboardhq/crewboard/internal/notify"
)

const usage = `usage: crewboard <command> [arguments]

commands:
  login       obtain a session token
  board       print a workspace board
  watch       follow a workspace board live
  move        move a task to another stage
  assign      assign a new task
  tasks       list an employee's tasks
  employees   list the employee directory
  workspaces  list workspaces
  clock       clock in or out
  leave       leave requests
`

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("CREWBOARD_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("CREWBOARD_LOG_FORMAT")
	if logFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Stop on SIGINT / SIGTERM; watch mode relies on this to disconnect.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session := client.NewSession(cfg.Auth.Token)
	session.OnExpired(func() {
		fmt.Fprintln(os.Stderr, "session expired; run `crewboard login` again")
		cancel()
	})

	api := client.New(cfg.API.BaseURL, session,
		client.WithLogger(log.Logger),
		client.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	notifier := notify.NewRegistry()
	notifier.Register(notify.NewWriterNotifier(os.Stderr))
	notifier.Register(notify.NewLogNotifier(log.Logger))

	app := &app{cfg: cfg, api: api, notifier: notifier}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		return app.login(ctx, args)
	case "board":
		return app.board(ctx, args)
	case "watch":
		return app.watch(ctx, args)
	case "move":
		return app.move(ctx, args)
	case "assign":
		return app.assign(ctx, args)
	case "tasks":
		return app.tasks(ctx, args)
	case "employees":
		return app.employees(ctx, args)
	case "workspaces":
		return app.workspaces(ctx, args)
	case "clock":
		return app.clock(ctx, args)
	case "leave":
		return app.leave(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
