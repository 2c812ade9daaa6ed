package hierarchy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

func sampleChart() types.Employee {
	return types.Employee{ID: 1, Name: "CEO", Subordinates: []types.Employee{
		{ID: 2, Name: "A", Subordinates: []types.Employee{
			{ID: 4, Name: "C", Subordinates: []types.Employee{
				{ID: 5, Name: "D"},
				{ID: 6, Name: "E"},
			}},
		}},
		{ID: 3, Name: "B"},
	}}
}

func mustTree(t *testing.T, root types.Employee) *Tree {
	t.Helper()
	tree, err := FromEmployee(root)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	return tree
}

func intp(v int) *int { return &v }

func TestFromEmployee_RoundTrip(t *testing.T) {
	tree := mustTree(t, sampleChart())
	if tree.Len() != 6 {
		t.Fatalf("len=%d", tree.Len())
	}
	if tree.Root() != 1 {
		t.Fatalf("root=%d", tree.Root())
	}
	if got := tree.Export(); !reflect.DeepEqual(got, sampleChart()) {
		t.Fatalf("got=%+v", got)
	}
}

func TestFromEmployee_DuplicateID(t *testing.T) {
	root := types.Employee{ID: 1, Subordinates: []types.Employee{
		{ID: 2}, {ID: 3, Subordinates: []types.Employee{{ID: 2}}},
	}}
	if _, err := FromEmployee(root); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err=%v", err)
	}

	selfRef := types.Employee{ID: 1, Subordinates: []types.Employee{{ID: 1}}}
	if _, err := FromEmployee(selfRef); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err=%v", err)
	}
}

func TestLookups(t *testing.T) {
	tree := mustTree(t, sampleChart())

	if name, ok := tree.Name(4); !ok || name != "C" {
		t.Fatalf("name=%q ok=%v", name, ok)
	}
	if _, ok := tree.Name(99); ok {
		t.Fatal("expected missing")
	}
	if sup, ok := tree.Supervisor(4); !ok || sup != 2 {
		t.Fatalf("sup=%d ok=%v", sup, ok)
	}
	if _, ok := tree.Supervisor(1); ok {
		t.Fatal("root has no supervisor")
	}
	if _, ok := tree.Supervisor(99); ok {
		t.Fatal("unknown id has no supervisor")
	}
	if got := tree.Subordinates(4); !reflect.DeepEqual(got, []int{5, 6}) {
		t.Fatalf("subs=%v", got)
	}
	if got := tree.Subordinates(99); got != nil {
		t.Fatalf("subs=%v", got)
	}
	if d, ok := tree.Depth(5); !ok || d != 3 {
		t.Fatalf("depth=%d ok=%v", d, ok)
	}
	if d, ok := tree.Depth(1); !ok || d != 0 {
		t.Fatalf("depth=%d ok=%v", d, ok)
	}
	if _, ok := tree.Depth(99); ok {
		t.Fatal("expected missing")
	}

	sub, ok := tree.Find(4)
	if !ok || sub.ID != 4 || len(sub.Subordinates) != 2 {
		t.Fatalf("sub=%+v ok=%v", sub, ok)
	}
	if _, ok := tree.Find(99); ok {
		t.Fatal("expected missing")
	}
}

func TestInSubtree(t *testing.T) {
	tree := mustTree(t, sampleChart())
	cases := []struct {
		ancestor, id int
		want         bool
	}{
		{2, 2, true},
		{2, 4, true},
		{2, 6, true},
		{2, 3, false},
		{4, 2, false},
		{1, 6, true},
		{2, 99, false},
	}
	for _, tc := range cases {
		if got := tree.InSubtree(tc.ancestor, tc.id); got != tc.want {
			t.Fatalf("InSubtree(%d,%d)=%v", tc.ancestor, tc.id, got)
		}
	}
}

func TestWalk_PreOrderAndStop(t *testing.T) {
	tree := mustTree(t, sampleChart())

	var ids, depths []int
	tree.Walk(func(id int, depth int) bool {
		ids = append(ids, id)
		depths = append(depths, depth)
		return true
	})
	if !reflect.DeepEqual(ids, []int{1, 2, 4, 5, 6, 3}) {
		t.Fatalf("ids=%v", ids)
	}
	if !reflect.DeepEqual(depths, []int{0, 1, 2, 3, 3, 1}) {
		t.Fatalf("depths=%v", depths)
	}

	visited := 0
	tree.Walk(func(int, int) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Fatalf("visited=%d", visited)
	}
}

func TestFacts(t *testing.T) {
	tree := mustTree(t, sampleChart())
	facts := tree.Facts()
	if len(facts) != 6 {
		t.Fatalf("len=%d", len(facts))
	}
	byID := map[int]types.EmployeeFacts{}
	for _, f := range facts {
		byID[f.ID] = f
	}
	if f := byID[1]; !f.IsRoot || f.Headcount != 6 || f.DirectReports != 2 || f.SupervisorID != 0 {
		t.Fatalf("root=%+v", f)
	}
	if f := byID[2]; f.Headcount != 4 || f.SupervisorID != 1 || f.Depth != 1 {
		t.Fatalf("a=%+v", f)
	}
	if f := byID[6]; f.Headcount != 1 || f.DirectReports != 0 || f.Depth != 3 || f.SupervisorID != 4 {
		t.Fatalf("e=%+v", f)
	}
}

func TestReparent_CarriesSubtree(t *testing.T) {
	tree := mustTree(t, sampleChart())
	if err := tree.Reparent(4, 3); err != nil {
		t.Fatalf("err=%v", err)
	}
	want := types.Employee{ID: 1, Name: "CEO", Subordinates: []types.Employee{
		{ID: 2, Name: "A"},
		{ID: 3, Name: "B", Subordinates: []types.Employee{
			{ID: 4, Name: "C", Subordinates: []types.Employee{
				{ID: 5, Name: "D"},
				{ID: 6, Name: "E"},
			}},
		}},
	}}
	if got := tree.Export(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%+v", got)
	}
	if sup, _ := tree.Supervisor(4); sup != 3 {
		t.Fatalf("sup=%d", sup)
	}
	if tree.Len() != 6 {
		t.Fatalf("len=%d", tree.Len())
	}
}

func TestReparent_AppendsAfterExistingReports(t *testing.T) {
	tree := mustTree(t, sampleChart())
	if err := tree.Reparent(3, 4); err != nil {
		t.Fatalf("err=%v", err)
	}
	if got := tree.Subordinates(4); !reflect.DeepEqual(got, []int{5, 6, 3}) {
		t.Fatalf("subs=%v", got)
	}
	if got := tree.Subordinates(1); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("subs=%v", got)
	}
}

func TestReparent_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		emp, sup int
		want     error
	}{
		{name: "missing employee", emp: 99, sup: 1, want: ErrNodeNotFound},
		{name: "missing supervisor", emp: 4, sup: 99, want: ErrNodeNotFound},
		{name: "root", emp: 1, sup: 3, want: ErrRootImmovable},
		{name: "self", emp: 4, sup: 4, want: ErrCycle},
		{name: "descendant", emp: 2, sup: 6, want: ErrCycle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustTree(t, sampleChart())
			err := tree.Reparent(tc.emp, tc.sup)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v", err)
			}
			if got := tree.Export(); !reflect.DeepEqual(got, sampleChart()) {
				t.Fatalf("tree mutated: %+v", got)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	tree := mustTree(t, sampleChart())
	c := tree.Clone()
	if err := tree.Reparent(3, 4); err != nil {
		t.Fatalf("err=%v", err)
	}
	if got := c.Export(); !reflect.DeepEqual(got, sampleChart()) {
		t.Fatalf("clone changed: %+v", got)
	}
	if err := c.Reparent(5, 1); err != nil {
		t.Fatalf("err=%v", err)
	}
	if got := tree.Subordinates(4); !reflect.DeepEqual(got, []int{5, 6, 3}) {
		t.Fatalf("original changed: %v", got)
	}
}

func TestAssemble(t *testing.T) {
	rows := []types.EmployeeRow{
		{ID: 4, Name: "C", SupervisorID: intp(2)},
		{ID: 1, Name: "CEO"},
		{ID: 2, Name: "A", SupervisorID: intp(1)},
		{ID: 3, Name: "B", SupervisorID: intp(1)},
		{ID: 5, Name: "D", SupervisorID: intp(4)},
		{ID: 6, Name: "E", SupervisorID: intp(4)},
	}
	got, err := Assemble(rows)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !reflect.DeepEqual(got, sampleChart()) {
		t.Fatalf("got=%+v", got)
	}
}

func TestAssemble_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows []types.EmployeeRow
		want error
	}{
		{name: "empty", rows: nil, want: ErrRootMissing},
		{name: "no root", rows: []types.EmployeeRow{{ID: 1, SupervisorID: intp(2)}, {ID: 2, SupervisorID: intp(1)}}, want: ErrRootMissing},
		{name: "two roots", rows: []types.EmployeeRow{{ID: 1}, {ID: 2}}, want: ErrMultipleRoots},
		{name: "duplicate", rows: []types.EmployeeRow{{ID: 1}, {ID: 2, SupervisorID: intp(1)}, {ID: 2, SupervisorID: intp(1)}}, want: ErrDuplicateID},
		{name: "dangling supervisor", rows: []types.EmployeeRow{{ID: 1}, {ID: 2, SupervisorID: intp(7)}}, want: ErrSupervisorMissing},
		{name: "detached cycle", rows: []types.EmployeeRow{{ID: 1}, {ID: 2, SupervisorID: intp(3)}, {ID: 3, SupervisorID: intp(2)}}, want: ErrCycle},
		{name: "self supervised", rows: []types.EmployeeRow{{ID: 1}, {ID: 2, SupervisorID: intp(2)}}, want: ErrCycle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Assemble(tc.rows); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}
