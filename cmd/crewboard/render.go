package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/crewboardhq/crewboard/internal/board"
	"github.com/crewboardhq/crewboard/internal/domain"
)

func renderBoard(w io.Writer, view board.Snapshot) {
	for _, st := range domain.Stages() {
		items := view[st]
		fmt.Fprintf(w, "%s (%d)\n", st, len(items))
		if len(items) == 0 {
			fmt.Fprintln(w, "  -")
			continue
		}
		for _, it := range items {
			due := it.DueDate
			if due == "" {
				due = "unscheduled"
			}
			fmt.Fprintf(w, "  [%d] %s  (%s, %s)\n", it.ID, it.Title, it.AssigneeName, due)
		}
	}
}

func renderTasks(w io.Writer, items []domain.WorkItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tSTAGE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Title, it.DueDate, it.Stage())
	}
	tw.Flush()
}

func renderEmployees(w io.Writer, emps []domain.Employee) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, e := range emps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Email, e.Role)
	}
	tw.Flush()
}

func renderLeaves(w io.Writer, leaves []domain.LeaveRequest) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tSTATUS")
	for _, l := range leaves {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.EmployeeName, l.Type, l.StartDate, l.EndDate, l.Status)
	}
	tw.Flush()
}
