package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacksonlee411/orgchart/modules/orgchart/services"
	"github.com/jacksonlee411/orgchart/pkg/orgview"
)

type stepKind string

const (
	stepMove    stepKind = "move"
	stepUndo    stepKind = "undo"
	stepRedo    stepKind = "redo"
	stepShow    stepKind = "show"
	stepHistory stepKind = "history"
	stepFind    stepKind = "find"
)

type step struct {
	kind         stepKind
	employeeID   int
	supervisorID int
	expr         string
}

func parseSteps(raw []string) ([]step, error) {
	out := make([]step, 0, len(raw))
	for _, r := range raw {
		s, err := parseStep(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStep(raw string) (step, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return step{}, errors.New("empty step")
	}
	kind := stepKind(strings.ToLower(fields[0]))
	switch kind {
	case stepUndo, stepRedo, stepShow, stepHistory:
		if len(fields) != 1 {
			return step{}, fmt.Errorf("step %q takes no arguments", kind)
		}
		return step{kind: kind}, nil
	case stepMove:
		if len(fields) != 3 {
			return step{}, errors.New("usage: move EMPLOYEE_ID SUPERVISOR_ID")
		}
		emp, err := strconv.Atoi(fields[1])
		if err != nil {
			return step{}, fmt.Errorf("employee id %q: %w", fields[1], err)
		}
		sup, err := strconv.Atoi(fields[2])
		if err != nil {
			return step{}, fmt.Errorf("supervisor id %q: %w", fields[2], err)
		}
		return step{kind: kind, employeeID: emp, supervisorID: sup}, nil
	case stepFind:
		expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), fields[0]))
		if expr == "" {
			return step{}, errors.New("usage: find EXPR")
		}
		return step{kind: kind, expr: expr}, nil
	default:
		return step{}, fmt.Errorf("unknown step %q", fields[0])
	}
}

// runSteps applies steps in order and stops at the first failing one.
func runSteps(ctx context.Context, s *session, steps []step, w io.Writer) error {
	for i, st := range steps {
		if err := runStep(ctx, s, st, w); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.kind, err)
		}
	}
	return nil
}

func runStep(ctx context.Context, s *session, st step, w io.Writer) error {
	switch st.kind {
	case stepMove:
		res, err := s.svc.Move(ctx, s.actor, services.MoveEmployeeRequest{EmployeeID: st.employeeID, SupervisorID: st.supervisorID})
		if err != nil {
			return err
		}
		if !res.Changed {
			_, err = fmt.Fprintf(w, "move %d -> %d: unchanged\n", st.employeeID, st.supervisorID)
			return err
		}
		_, err = fmt.Fprintf(w, "move %d -> %d: was under %d (entry %s)\n", st.employeeID, st.supervisorID, res.Entry.FromSupervisorID, res.Entry.ID)
		return err
	case stepUndo, stepRedo:
		var moved bool
		var err error
		if st.kind == stepUndo {
			moved, err = s.svc.Undo(ctx, s.actor)
		} else {
			moved, err = s.svc.Redo(ctx, s.actor)
		}
		if err != nil {
			return err
		}
		state := "nothing to " + string(st.kind)
		if moved {
			state = "ok"
		}
		_, err = fmt.Fprintf(w, "%s: %s (cursor %d/%d)\n", st.kind, state, s.engine.Cursor(), s.engine.Len()-1)
		return err
	case stepShow:
		root, err := s.svc.Chart(ctx, s.actor)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, orgview.Render(root))
		return err
	case stepHistory:
		view, err := s.svc.History(ctx, s.actor)
		if err != nil {
			return err
		}
		for i, e := range view.Entries {
			marker := " "
			if i == view.Cursor {
				marker = "*"
			}
			line := fmt.Sprintf("%s %d %s", marker, i, e.Kind)
			if e.EmployeeID != 0 {
				line += fmt.Sprintf(" %d: %d -> %d", e.EmployeeID, e.FromSupervisorID, e.ToSupervisorID)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case stepFind:
		facts, err := s.svc.Query(ctx, s.actor, st.expr)
		if err != nil {
			return err
		}
		for _, f := range facts {
			if _, err := fmt.Fprintf(w, "%d\t%s\tsupervisor=%d\tdepth=%d\treports=%d\theadcount=%d\n",
				f.ID, f.Name, f.SupervisorID, f.Depth, f.DirectReports, f.Headcount); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown step %q", st.kind)
	}
}
