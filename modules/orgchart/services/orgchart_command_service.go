package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
	"github.com/jacksonlee411/orgchart/pkg/authz"
	"github.com/jacksonlee411/orgchart/pkg/selector"
)

var ErrForbidden = errors.New("orgchart_forbidden")

type Actor struct {
	ID   string
	Role string
}

type MoveEmployeeRequest struct {
	EmployeeID   int
	SupervisorID int
}

type MoveEmployeeResult struct {
	Changed bool
	Entry   types.HistoryEntry
}

type HistoryView struct {
	Entries []types.HistoryEntry
	Cursor  int
}

type OrgChartService interface {
	Move(ctx context.Context, actor Actor, req MoveEmployeeRequest) (MoveEmployeeResult, error)
	Undo(ctx context.Context, actor Actor) (bool, error)
	Redo(ctx context.Context, actor Actor) (bool, error)
	Chart(ctx context.Context, actor Actor) (types.Employee, error)
	Query(ctx context.Context, actor Actor, expr string) ([]types.EmployeeFacts, error)
	History(ctx context.Context, actor Actor) (HistoryView, error)
}

type authorizer interface {
	Authorize(subject string, domain string, object string, action string) (allowed bool, enforced bool, err error)
}

type orgChartService struct {
	mu     sync.Mutex
	engine *Engine
	authz  authorizer
	logger *slog.Logger
}

// NewOrgChartService serializes access to engine. A nil logger discards.
func NewOrgChartService(engine *Engine, az authorizer, logger *slog.Logger) OrgChartService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &orgChartService{engine: engine, authz: az, logger: logger}
}

func (s *orgChartService) Move(ctx context.Context, actor Actor, req MoveEmployeeRequest) (MoveEmployeeResult, error) {
	if err := s.authorize(ctx, actor, authz.ActionMove); err != nil {
		return MoveEmployeeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.engine.Current()
	if err := s.engine.Move(req.EmployeeID, req.SupervisorID); err != nil {
		s.logger.WarnContext(ctx, "move rejected",
			"actor", actor.ID,
			"employee_id", req.EmployeeID,
			"supervisor_id", req.SupervisorID,
			"err", err,
		)
		return MoveEmployeeResult{}, err
	}
	entry := s.engine.Current()
	if entry.Seq == before.Seq {
		s.logger.InfoContext(ctx, "move unchanged",
			"actor", actor.ID,
			"employee_id", req.EmployeeID,
			"supervisor_id", req.SupervisorID,
		)
		return MoveEmployeeResult{Changed: false, Entry: entry}, nil
	}
	s.logger.InfoContext(ctx, "employee moved",
		"actor", actor.ID,
		"entry_id", entry.ID,
		"employee_id", entry.EmployeeID,
		"from_supervisor_id", entry.FromSupervisorID,
		"to_supervisor_id", entry.ToSupervisorID,
		"cursor", s.engine.Cursor(),
	)
	return MoveEmployeeResult{Changed: true, Entry: entry}, nil
}

func (s *orgChartService) Undo(ctx context.Context, actor Actor) (bool, error) {
	if err := s.authorize(ctx, actor, authz.ActionUndo); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moved := s.engine.Undo()
	s.logger.InfoContext(ctx, "undo", "actor", actor.ID, "moved", moved, "cursor", s.engine.Cursor())
	return moved, nil
}

func (s *orgChartService) Redo(ctx context.Context, actor Actor) (bool, error) {
	if err := s.authorize(ctx, actor, authz.ActionRedo); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moved := s.engine.Redo()
	s.logger.InfoContext(ctx, "redo", "actor", actor.ID, "moved", moved, "cursor", s.engine.Cursor())
	return moved, nil
}

func (s *orgChartService) Chart(ctx context.Context, actor Actor) (types.Employee, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead); err != nil {
		return types.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Root(), nil
}

func (s *orgChartService) Query(ctx context.Context, actor Actor, expr string) ([]types.EmployeeFacts, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead); err != nil {
		return nil, err
	}
	sel, err := selector.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile selector: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Select(sel.Match)
}

func (s *orgChartService) History(ctx context.Context, actor Actor) (HistoryView, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead); err != nil {
		return HistoryView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return HistoryView{Entries: s.engine.Entries(), Cursor: s.engine.Cursor()}, nil
}

// authorize fails on any authorizer error. Denials are refused only in
// enforce mode; shadow-mode denials are logged.
func (s *orgChartService) authorize(ctx context.Context, actor Actor, action string) error {
	if s.authz == nil {
		return nil
	}
	subject := authz.SubjectFromRoleSlug(actor.Role)
	allowed, enforced, err := s.authz.Authorize(subject, authz.DomainGlobal, authz.ObjectOrgChartHierarchy, action)
	if err != nil {
		s.logger.ErrorContext(ctx, "authz error", "subject", subject, "action", action, "enforced", enforced, "err", err)
		return fmt.Errorf("authorize %s: %w", action, err)
	}
	if allowed {
		return nil
	}
	if enforced {
		return fmt.Errorf("%w: %s may not %s", ErrForbidden, subject, action)
	}
	s.logger.WarnContext(ctx, "authz shadow deny", "subject", subject, "action", action)
	return nil
}
