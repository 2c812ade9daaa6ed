package orgview

import (
	"strings"
	"testing"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

func TestLabel(t *testing.T) {
	if got := Label(types.Employee{ID: 4, Name: " Bob Saget "}); got != "Bob Saget (4)" {
		t.Fatalf("got=%q", got)
	}
	if got := Label(types.Employee{ID: 7}); got != "(7)" {
		t.Fatalf("got=%q", got)
	}
}

func TestRender(t *testing.T) {
	root := types.Employee{ID: 1, Name: "CEO", Subordinates: []types.Employee{
		{ID: 2, Name: "A", Subordinates: []types.Employee{{ID: 4, Name: "C"}}},
		{ID: 3, Name: "B"},
	}}
	out := Render(root)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%q", lines)
	}
	if lines[0] != "CEO (1)" {
		t.Fatalf("root line=%q", lines[0])
	}
	order := []string{"A (2)", "C (4)", "B (3)"}
	for i, want := range order {
		if !strings.HasSuffix(lines[i+1], want) {
			t.Fatalf("line %d=%q want suffix %q", i+1, lines[i+1], want)
		}
	}
	// C is nested one level deeper than A.
	if strings.Index(lines[2], "C (4)") <= strings.Index(lines[1], "A (2)") {
		t.Fatalf("nesting lost: %q", out)
	}
}
