package orgview

import (
	"fmt"
	"strings"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
	"github.com/xlab/treeprint"
)

// Label is how one employee is shown: "Name (id)".
func Label(e types.Employee) string {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return fmt.Sprintf("(%d)", e.ID)
	}
	return fmt.Sprintf("%s (%d)", name, e.ID)
}

// Render draws the chart as an indented text tree, reports in display order.
func Render(root types.Employee) string {
	tree := treeprint.NewWithRoot(Label(root))
	addReports(tree, root.Subordinates)
	return tree.String()
}

func addReports(tree treeprint.Tree, reports []types.Employee) {
	for _, r := range reports {
		if len(r.Subordinates) == 0 {
			tree.AddNode(Label(r))
			continue
		}
		addReports(tree.AddBranch(Label(r)), r.Subordinates)
	}
}
