package hierarchy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

var (
	ErrNodeNotFound      = errors.New("node_not_found")
	ErrDuplicateID       = errors.New("duplicate_node_id")
	ErrRootImmovable     = errors.New("root_immovable")
	ErrCycle             = errors.New("hierarchy_cycle")
	ErrRootMissing       = errors.New("root_missing")
	ErrMultipleRoots     = errors.New("multiple_roots")
	ErrSupervisorMissing = errors.New("supervisor_missing")
)

type node struct {
	name     string
	parent   int
	children []int
}

// Tree is an arena of employees keyed by id. Parent and child relations are
// stored as ids, so copying the arena never shares nodes between copies.
type Tree struct {
	rootID int
	nodes  map[int]*node
}

// FromEmployee indexes a nested chart. Ids must be unique across the chart.
func FromEmployee(root types.Employee) (*Tree, error) {
	t := &Tree{rootID: root.ID, nodes: make(map[int]*node)}

	type frame struct {
		e      *types.Employee
		parent int
	}
	stack := []frame{{e: &root, parent: root.ID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := t.nodes[f.e.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, f.e.ID)
		}
		n := &node{name: f.e.Name, parent: f.parent}
		for i := range f.e.Subordinates {
			n.children = append(n.children, f.e.Subordinates[i].ID)
		}
		t.nodes[f.e.ID] = n

		for i := len(f.e.Subordinates) - 1; i >= 0; i-- {
			stack = append(stack, frame{e: &f.e.Subordinates[i], parent: f.e.ID})
		}
	}
	return t, nil
}

func (t *Tree) Root() int { return t.rootID }

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Contains(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *Tree) Name(id int) (string, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return "", false
	}
	return n.name, true
}

// Supervisor returns the parent of id. The root and unknown ids have none.
func (t *Tree) Supervisor(id int) (int, bool) {
	n, ok := t.nodes[id]
	if !ok || id == t.rootID {
		return 0, false
	}
	return n.parent, true
}

func (t *Tree) Subordinates(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// Depth is the number of edges between the root and id.
func (t *Tree) Depth(id int) (int, bool) {
	if _, ok := t.nodes[id]; !ok {
		return 0, false
	}
	depth := 0
	for cur := id; cur != t.rootID; cur = t.nodes[cur].parent {
		depth++
	}
	return depth, true
}

// InSubtree reports whether id is ancestorID itself or one of its descendants.
func (t *Tree) InSubtree(ancestorID, id int) bool {
	if _, ok := t.nodes[id]; !ok {
		return false
	}
	for cur := id; ; cur = t.nodes[cur].parent {
		if cur == ancestorID {
			return true
		}
		if cur == t.rootID {
			return false
		}
	}
}

// Walk visits the tree depth-first in child order, starting at the root.
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id int, depth int) bool) {
	type frame struct{ id, depth int }
	stack := []frame{{id: t.rootID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.id, f.depth) {
			return
		}
		children := t.nodes[f.id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i], depth: f.depth + 1})
		}
	}
}

// Facts lists every employee in walk order with derived counts.
func (t *Tree) Facts() []types.EmployeeFacts {
	out := make([]types.EmployeeFacts, 0, len(t.nodes))
	t.Walk(func(id int, depth int) bool {
		n := t.nodes[id]
		f := types.EmployeeFacts{
			ID:            id,
			Name:          n.name,
			IsRoot:        id == t.rootID,
			Depth:         depth,
			DirectReports: len(n.children),
			Headcount:     1,
		}
		if !f.IsRoot {
			f.SupervisorID = n.parent
		}
		out = append(out, f)
		return true
	})

	// Reverse pre-order sees every child before its parent.
	pos := make(map[int]int, len(out))
	for i := range out {
		pos[out[i].ID] = i
	}
	for i := len(out) - 1; i > 0; i-- {
		out[pos[out[i].SupervisorID]].Headcount += out[i].Headcount
	}
	return out
}

// Reparent rewires the single edge into employeeID so that it runs from
// supervisorID. The employee keeps its own subordinates.
func (t *Tree) Reparent(employeeID, supervisorID int) error {
	e, ok := t.nodes[employeeID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, employeeID)
	}
	s, ok := t.nodes[supervisorID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, supervisorID)
	}
	if employeeID == t.rootID {
		return fmt.Errorf("%w: %d", ErrRootImmovable, employeeID)
	}
	if t.InSubtree(employeeID, supervisorID) {
		return fmt.Errorf("%w: %d is within the subtree of %d", ErrCycle, supervisorID, employeeID)
	}

	p := t.nodes[e.parent]
	if i := slices.Index(p.children, employeeID); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	s.children = append(s.children, employeeID)
	e.parent = supervisorID
	return nil
}

// Clone returns a copy that shares no mutable state with t.
func (t *Tree) Clone() *Tree {
	c := &Tree{rootID: t.rootID, nodes: make(map[int]*node, len(t.nodes))}
	for id, n := range t.nodes {
		c.nodes[id] = &node{name: n.name, parent: n.parent, children: slices.Clone(n.children)}
	}
	return c
}

func (t *Tree) Export() types.Employee {
	return t.export(t.rootID)
}

// Find returns a copy of the subtree rooted at id.
func (t *Tree) Find(id int) (types.Employee, bool) {
	if _, ok := t.nodes[id]; !ok {
		return types.Employee{}, false
	}
	return t.export(id), true
}

func (t *Tree) export(id int) types.Employee {
	n := t.nodes[id]
	e := types.Employee{ID: id, Name: n.name}
	for _, child := range n.children {
		e.Subordinates = append(e.Subordinates, t.export(child))
	}
	return e
}

// Assemble nests flat rows under the single row without a supervisor. Rows
// sharing a supervisor keep their relative order.
func Assemble(rows []types.EmployeeRow) (types.Employee, error) {
	index := make(map[int]int, len(rows))
	rootIdx := -1
	for i, r := range rows {
		if _, ok := index[r.ID]; ok {
			return types.Employee{}, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		index[r.ID] = i
		if r.SupervisorID == nil {
			if rootIdx >= 0 {
				return types.Employee{}, fmt.Errorf("%w: %d and %d", ErrMultipleRoots, rows[rootIdx].ID, r.ID)
			}
			rootIdx = i
		}
	}
	if rootIdx < 0 {
		return types.Employee{}, ErrRootMissing
	}

	children := make(map[int][]int, len(rows))
	for i, r := range rows {
		if r.SupervisorID == nil {
			continue
		}
		if _, ok := index[*r.SupervisorID]; !ok {
			return types.Employee{}, fmt.Errorf("%w: %d (supervisor of %d)", ErrSupervisorMissing, *r.SupervisorID, r.ID)
		}
		children[*r.SupervisorID] = append(children[*r.SupervisorID], i)
	}

	visited := 0
	var build func(i int) types.Employee
	build = func(i int) types.Employee {
		visited++
		e := types.Employee{ID: rows[i].ID, Name: rows[i].Name}
		for _, c := range children[rows[i].ID] {
			e.Subordinates = append(e.Subordinates, build(c))
		}
		return e
	}
	root := build(rootIdx)
	if visited != len(rows) {
		return types.Employee{}, fmt.Errorf("%w: %d rows unreachable from root %d", ErrCycle, len(rows)-visited, root.ID)
	}
	return root, nil
}
