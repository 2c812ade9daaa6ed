package types

import "time"

// Employee is one node of the organization chart together with its direct
// reports. Subordinates is owned by this value; order is display order.
type Employee struct {
	ID           int
	Name         string
	Subordinates []Employee
}

// EmployeeRow is the flat form of an employee as stored in a table.
// SupervisorID is nil only for the root.
type EmployeeRow struct {
	ID           int
	Name         string
	SupervisorID *int
}

type EmployeeFacts struct {
	ID            int
	Name          string
	SupervisorID  int
	IsRoot        bool
	Depth         int
	DirectReports int
	Headcount     int
}

type HistoryEntryKind string

const (
	HistoryEntryInitial HistoryEntryKind = "INITIAL"
	HistoryEntryMove    HistoryEntryKind = "MOVE"
)

// HistoryEntry describes how the snapshot it is attached to was produced.
// Supervisor ids are zero for the INITIAL entry.
type HistoryEntry struct {
	ID               string
	Seq              int
	Kind             HistoryEntryKind
	EmployeeID       int
	FromSupervisorID int
	ToSupervisorID   int
	RecordedAt       time.Time
}
