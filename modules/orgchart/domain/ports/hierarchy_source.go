package ports

import (
	"context"
	"errors"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

var (
	ErrHierarchyEmpty       = errors.New("hierarchy_empty")
	ErrHierarchyUnsupported = errors.New("hierarchy_version_unsupported")
)

// HierarchySource provides the initial chart an engine is constructed from.
type HierarchySource interface {
	LoadHierarchy(ctx context.Context) (types.Employee, error)
}
