// Package selector filters employees with CEL expressions such as
//
//	depth >= 2 && reports == 0
//	name.startsWith("G") || supervisor_id == 15
//
// Available variables: id, name, supervisor_id, depth, reports, headcount,
// is_root. supervisor_id is 0 for the root.
package selector

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

var ErrExpressionRequired = errors.New("selector_expression_required")

var programCache sync.Map

var newSelectorCELEnv = func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("name", cel.StringType),
		cel.Variable("supervisor_id", cel.IntType),
		cel.Variable("depth", cel.IntType),
		cel.Variable("reports", cel.IntType),
		cel.Variable("headcount", cel.IntType),
		cel.Variable("is_root", cel.BoolType),
	)
}

type Selector struct {
	expr    string
	program cel.Program
}

// Compile parses and type-checks expr. Programs are cached by expression text.
func Compile(expr string) (*Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrExpressionRequired
	}
	if cached, ok := programCache.Load(expr); ok {
		return &Selector{expr: expr, program: cached.(cel.Program)}, nil
	}
	env, err := newSelectorCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New("selector: expression must evaluate to bool")
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	programCache.Store(expr, program)
	return &Selector{expr: expr, program: program}, nil
}

func (s *Selector) String() string { return s.expr }

// Match evaluates the expression against one employee.
func (s *Selector) Match(f types.EmployeeFacts) (bool, error) {
	out, _, err := s.program.Eval(map[string]any{
		"id":            int64(f.ID),
		"name":          f.Name,
		"supervisor_id": int64(f.SupervisorID),
		"depth":         int64(f.Depth),
		"reports":       int64(f.DirectReports),
		"headcount":     int64(f.Headcount),
		"is_root":       f.IsRoot,
	})
	if err != nil {
		return false, err
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("selector: non-bool result")
	}
	return v, nil
}
