package app

import (
	"go-workforce/internal/activity"
	"go-workforce/internal/department"
	"go-workforce/internal/employee"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/notification"
	"go-workforce/internal/profile"
	"go-workforce/internal/role"
	"go-workforce/internal/session"
	"go-workforce/internal/stats"
	"go-workforce/internal/systemlog"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
)

// Modules exposes the services other process components reuse.
type Modules struct {
	SystemLogs systemlog.Service
	Stats      stats.Service
}

func registerModules(api *gin.RouterGroup, d Deps) *Modules {
	db, rdb, clk, log := d.DB, d.Redis, d.Clock, d.Logger

	// --- Repositories ---
	departmentRepo := department.NewRepository(db)
	roleRepo := role.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	userRepo := user.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	activityRepo := activity.NewRepository(db)
	systemLogRepo := systemlog.NewRepository(db)
	statsRepo := stats.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db, clk)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo, rdb, clk, log)
	roleService := role.NewService(db, roleRepo, rdb, clk, log)
	employeeService := employee.NewService(db, employeeRepo, outboxRepo, clk, log)
	userService := user.NewService(db, userRepo, clk, log)
	sessionService := session.NewService(db, sessionRepo, clk, d.Config.SessionTTL, log)
	profileService := profile.NewService(db, profileRepo, clk, log)
	notificationService := notification.NewService(db, notificationRepo, clk, log)
	activityService := activity.NewService(activityRepo, clk, log)
	systemLogService := systemlog.NewService(systemLogRepo, clk, log)
	statsService := stats.NewService(statsRepo, clk, log)

	// --- Routes Registration ---
	department.RegisterRoutes(api, department.NewHandler(departmentService, log))
	role.RegisterRoutes(api, role.NewHandler(roleService, log))
	employee.RegisterRoutes(api, employee.NewHandler(employeeService, log))
	user.RegisterRoutes(api, user.NewHandler(userService, log))
	session.RegisterRoutes(api, session.NewHandler(sessionService, log))
	profile.RegisterRoutes(api, profile.NewHandler(profileService, log))
	notification.RegisterRoutes(api, notification.NewHandler(notificationService, log))
	activity.RegisterRoutes(api, activity.NewHandler(activityService))
	systemlog.RegisterRoutes(api, systemlog.NewHandler(systemLogService))
	stats.RegisterRoutes(api, stats.NewHandler(statsService))

	return &Modules{
		SystemLogs: systemLogService,
		Stats:      statsService,
	}
}
