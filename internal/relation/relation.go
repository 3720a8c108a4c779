// Package relation owns the ownership graph between stored entities and
// executes hard deletes along it.
package relation

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindDepartment   Kind = "departamentos"
	KindRole         Kind = "roles"
	KindEmployee     Kind = "empleados"
	KindUser         Kind = "usuarios"
	KindSession      Kind = "sesiones"
	KindProfile      Kind = "perfiles_empleados"
	KindNotification Kind = "notificaciones"
	KindActivity     Kind = "actividades_usuario"
	KindSystemLog    Kind = "log_sistema"
)

type node struct {
	table string
	pk    string
}

var nodes = map[Kind]node{
	KindDepartment:   {table: "departamentos", pk: "id_departamento"},
	KindRole:         {table: "roles", pk: "id_rol"},
	KindEmployee:     {table: "empleados", pk: "id_empleado"},
	KindUser:         {table: "usuarios", pk: "id_usuario"},
	KindSession:      {table: "sesiones", pk: "id_sesion"},
	KindProfile:      {table: "perfiles_empleados", pk: "id_perfil"},
	KindNotification: {table: "notificaciones", pk: "id_notificacion"},
	KindActivity:     {table: "actividades_usuario", pk: "id_actividad"},
	KindSystemLog:    {table: "log_sistema", pk: "id_log"},
}

// Edge points from a parent to the child column referencing it.
type Edge struct {
	Child Kind
	FK    string
}

// Rule lists what happens to children when a parent is hard deleted:
// Cascade children are deleted with it, Nullify children keep their row
// but lose the reference.
type Rule struct {
	Cascade []Edge
	Nullify []Edge
}

var graph = map[Kind]Rule{
	KindDepartment: {
		Cascade: []Edge{
			{Child: KindEmployee, FK: "id_departamento"},
			{Child: KindRole, FK: "id_departamento"},
		},
	},
	KindRole: {
		Cascade: []Edge{{Child: KindEmployee, FK: "id_rol"}},
	},
	KindEmployee: {
		Cascade: []Edge{
			{Child: KindUser, FK: "id_empleado"},
			{Child: KindProfile, FK: "id_empleado"},
		},
	},
	KindUser: {
		Cascade: []Edge{
			{Child: KindSession, FK: "id_usuario"},
			{Child: KindNotification, FK: "id_usuario"},
			{Child: KindActivity, FK: "id_usuario"},
		},
		Nullify: []Edge{{Child: KindSystemLog, FK: "id_usuario"}},
	},
}

// RuleFor returns the delete policy of kind; leaves have an empty rule.
func RuleFor(kind Kind) Rule {
	return graph[kind]
}

// Report counts the rows touched by one hard delete, keyed by kind.
type Report struct {
	Deleted   map[Kind]int64 `json:"eliminados"`
	Nullified map[Kind]int64 `json:"desvinculados,omitempty"`
}

func newReport() Report {
	return Report{
		Deleted:   map[Kind]int64{},
		Nullified: map[Kind]int64{},
	}
}

// Root returns how many rows of kind itself were deleted.
func (r Report) Root(kind Kind) int64 {
	return r.Deleted[kind]
}

// Cascade hard deletes the given rows of kind and everything they own.
// Children are removed before their parents and audit references are
// nulled. tx must be a transaction: on error the caller rolls back and no
// partial delete survives.
func Cascade(ctx context.Context, tx *gorm.DB, kind Kind, ids ...uint) (Report, error) {
	report := newReport()
	if err := cascade(tx.WithContext(ctx), kind, ids, &report); err != nil {
		return Report{}, err
	}
	return report, nil
}

func cascade(tx *gorm.DB, kind Kind, ids []uint, report *Report) error {
	if len(ids) == 0 {
		return nil
	}
	n, ok := nodes[kind]
	if !ok {
		return fmt.Errorf("relation: unknown kind %q", kind)
	}
	rule := graph[kind]

	for _, edge := range rule.Nullify {
		child := nodes[edge.Child]
		res := tx.Table(child.table).
			Where(edge.FK+" IN ?", ids).
			Update(edge.FK, nil)
		if res.Error != nil {
			return fmt.Errorf("relation: nullify %s.%s: %w", child.table, edge.FK, res.Error)
		}
		report.Nullified[edge.Child] += res.RowsAffected
	}

	for _, edge := range rule.Cascade {
		child := nodes[edge.Child]
		var childIDs []uint
		if err := tx.Table(child.table).
			Where(edge.FK+" IN ?", ids).
			Pluck(child.pk, &childIDs).Error; err != nil {
			return fmt.Errorf("relation: load %s children: %w", child.table, err)
		}
		if err := cascade(tx, edge.Child, childIDs, report); err != nil {
			return err
		}
	}

	res := tx.Exec("DELETE FROM "+n.table+" WHERE "+n.pk+" IN ?", ids)
	if res.Error != nil {
		return fmt.Errorf("relation: delete %s: %w", n.table, res.Error)
	}
	report.Deleted[kind] += res.RowsAffected
	return nil
}
