package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated     = "employee_created"
	EmployeeDeactivated = "employee_deactivated"
	EmployeeDeleted     = "employee_deleted"
)

// EmployeeLifecycleEvent is published for every employee create, soft
// delete and hard delete.
type EmployeeLifecycleEvent struct {
	EventType    string           `json:"event_type"`
	RequestID    string           `json:"request_id,omitempty"`
	EmployeeID   uint             `json:"id_empleado"`
	DepartmentID uint             `json:"id_departamento"`
	FullName     string           `json:"nombre_completo"`
	Email        string           `json:"email"`
	Deleted      map[string]int64 `json:"eliminados,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
