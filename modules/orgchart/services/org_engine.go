package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/hierarchy"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

var (
	ErrEmployeeNotFound   = errors.New("employee_not_found")
	ErrSupervisorNotFound = errors.New("supervisor_not_found")
	ErrRootImmovable      = hierarchy.ErrRootImmovable
	ErrCycle              = hierarchy.ErrCycle
	ErrSnapshotNotFound   = errors.New("snapshot_not_found")
)

type snapshot struct {
	tree  *hierarchy.Tree
	entry types.HistoryEntry
}

// Engine owns a live org chart and a linear history of snapshots.
//
// Every successful Move appends a snapshot; Undo and Redo move a cursor over
// the snapshots and restore the live chart from the one under the cursor.
// An Engine is not safe for concurrent use.
type Engine struct {
	live    *hierarchy.Tree
	history []snapshot
	cursor  int
	seq     int

	maxHistory int
	now        func() time.Time
	newEntryID func() (string, error)
}

// NewEngine indexes root and records it as snapshot 0.
func NewEngine(root types.Employee, opts ...EngineOption) (*Engine, error) {
	tree, err := hierarchy.FromEmployee(root)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		live:       tree,
		maxHistory: DefaultMaxHistory,
		now:        time.Now,
		newEntryID: newUUIDv7String,
	}
	for _, opt := range opts {
		opt(e)
	}

	entry, err := e.nextEntry(types.HistoryEntryInitial)
	if err != nil {
		return nil, err
	}
	e.history = []snapshot{{tree: tree.Clone(), entry: entry}}
	e.seq++
	return e, nil
}

// Move makes supervisorID the new supervisor of employeeID. The employee's
// own reports move with it. Moving an employee under its current supervisor
// changes nothing and records no snapshot.
func (e *Engine) Move(employeeID, supervisorID int) error {
	if !e.live.Contains(employeeID) {
		return fmt.Errorf("%w: %d", ErrEmployeeNotFound, employeeID)
	}
	if !e.live.Contains(supervisorID) {
		return fmt.Errorf("%w: %d", ErrSupervisorNotFound, supervisorID)
	}
	from, ok := e.live.Supervisor(employeeID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRootImmovable, employeeID)
	}
	if e.live.InSubtree(employeeID, supervisorID) {
		return fmt.Errorf("%w: employee=%d supervisor=%d", ErrCycle, employeeID, supervisorID)
	}
	if from == supervisorID {
		return nil
	}

	entry, err := e.nextEntry(types.HistoryEntryMove)
	if err != nil {
		return err
	}
	entry.EmployeeID = employeeID
	entry.FromSupervisorID = from
	entry.ToSupervisorID = supervisorID

	if err := e.live.Reparent(employeeID, supervisorID); err != nil {
		return err
	}
	e.record(entry)
	return nil
}

// Undo steps back one snapshot. It reports false when already at the first.
func (e *Engine) Undo() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	e.live = e.history[e.cursor].tree.Clone()
	return true
}

// Redo steps forward one snapshot. It reports false when already at the last.
func (e *Engine) Redo() bool {
	if e.cursor >= len(e.history)-1 {
		return false
	}
	e.cursor++
	e.live = e.history[e.cursor].tree.Clone()
	return true
}

func (e *Engine) CanUndo() bool { return e.cursor > 0 }

func (e *Engine) CanRedo() bool { return e.cursor < len(e.history)-1 }

// Cursor is the index of the snapshot the live chart corresponds to.
func (e *Engine) Cursor() int { return e.cursor }

// Len is the number of retained snapshots.
func (e *Engine) Len() int { return len(e.history) }

func (e *Engine) Current() types.HistoryEntry { return e.history[e.cursor].entry }

func (e *Engine) Entries() []types.HistoryEntry {
	out := make([]types.HistoryEntry, len(e.history))
	for i := range e.history {
		out[i] = e.history[i].entry
	}
	return out
}

// Snapshot returns the chart stored at history index i.
func (e *Engine) Snapshot(i int) (types.Employee, error) {
	if i < 0 || i >= len(e.history) {
		return types.Employee{}, fmt.Errorf("%w: %d", ErrSnapshotNotFound, i)
	}
	return e.history[i].tree.Export(), nil
}

func (e *Engine) Root() types.Employee { return e.live.Export() }

func (e *Engine) Headcount() int { return e.live.Len() }

// Find returns the subtree rooted at id.
func (e *Engine) Find(id int) (types.Employee, error) {
	emp, ok := e.live.Find(id)
	if !ok {
		return types.Employee{}, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
	}
	return emp, nil
}

// SupervisorOf returns the id of the employee id reports to. The root has no
// supervisor and yields ErrSupervisorNotFound.
func (e *Engine) SupervisorOf(id int) (int, error) {
	if !e.live.Contains(id) {
		return 0, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
	}
	sup, ok := e.live.Supervisor(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d is the root", ErrSupervisorNotFound, id)
	}
	return sup, nil
}

// Select returns the facts of every employee accepted by pred, in chart order.
func (e *Engine) Select(pred func(types.EmployeeFacts) (bool, error)) ([]types.EmployeeFacts, error) {
	var out []types.EmployeeFacts
	for _, f := range e.live.Facts() {
		ok, err := pred(f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (e *Engine) nextEntry(kind types.HistoryEntryKind) (types.HistoryEntry, error) {
	id, err := e.newEntryID()
	if err != nil {
		return types.HistoryEntry{}, err
	}
	return types.HistoryEntry{
		ID:         id,
		Seq:        e.seq,
		Kind:       kind,
		RecordedAt: e.now(),
	}, nil
}

// record drops any redo branch, appends the live chart and moves the cursor
// onto it.
func (e *Engine) record(entry types.HistoryEntry) {
	e.seq++
	e.history = append(e.history[:e.cursor+1], snapshot{tree: e.live.Clone(), entry: entry})
	if excess := len(e.history) - e.maxHistory; excess > 0 {
		e.history = slices.Delete(e.history, 0, excess)
	}
	e.cursor = len(e.history) - 1
}
