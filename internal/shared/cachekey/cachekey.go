package cachekey

import (
	"fmt"
	"time"
)

// TTL applies to every master-data list kept in Redis.
const TTL = 30 * time.Minute

const departmentsAll = "departamentos:all"

func DepartmentsAll() string {
	return departmentsAll
}

func RolesByDepartment(departmentID uint) string {
	return fmt.Sprintf("roles:departamento:%d", departmentID)
}
