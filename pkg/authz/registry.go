package authz

const (
	RoleHRAdmin   = "hr-admin"
	RoleViewer    = "viewer"
	RoleAnonymous = "anonymous"
)

const (
	ActionRead = "read"
	ActionMove = "move"
	ActionUndo = "undo"
	ActionRedo = "redo"
)

const DomainGlobal = "global"

const ObjectOrgChartHierarchy = "orgchart.hierarchy"
