package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/hierarchy"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/ports"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

type pgBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// EmployeePGSource reads the chart from orgchart.employees. It only reads.
type EmployeePGSource struct {
	pool pgBeginner
}

func NewEmployeePGSource(pool pgBeginner) ports.HierarchySource {
	return &EmployeePGSource{pool: pool}
}

func (s *EmployeePGSource) LoadHierarchy(ctx context.Context) (types.Employee, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return types.Employee{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	rows, err := tx.Query(ctx, `
SELECT employee_id, display_name, supervisor_id
FROM orgchart.employees
ORDER BY display_order, employee_id
`)
	if err != nil {
		return types.Employee{}, err
	}
	defer rows.Close()

	var out []types.EmployeeRow
	for rows.Next() {
		var r types.EmployeeRow
		if err := rows.Scan(&r.ID, &r.Name, &r.SupervisorID); err != nil {
			return types.Employee{}, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return types.Employee{}, err
	}
	if len(out) == 0 {
		return types.Employee{}, ports.ErrHierarchyEmpty
	}

	root, err := hierarchy.Assemble(out)
	if err != nil {
		return types.Employee{}, fmt.Errorf("orgchart.employees: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return types.Employee{}, err
	}
	return root, nil
}
