package app

import (
	"database/sql"
	"os"

	"github.com/Yaseenhassan/college-leave-app/internal/auth"
	"github.com/Yaseenhassan/college-leave-app/internal/department"
	"github.com/Yaseenhassan/college-leave-app/internal/leave"
	"github.com/Yaseenhassan/college-leave-app/internal/leavebalance"
	"github.com/Yaseenhassan/college-leave-app/internal/messaging/kafka"
	"github.com/Yaseenhassan/college-leave-app/internal/rbac"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/counter"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/storage"
	"github.com/Yaseenhassan/college-leave-app/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Blob store ---
	store, err := storage.NewLocalStore(os.Getenv("UPLOAD_DIR"))
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(staffRepo)
	departmentService := department.NewService(db, departmentRepo)
	staffService := staff.NewServiceWithOutbox(db, staffRepo, outboxRepo, rdb)
	balanceService := leavebalance.NewService(db, balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, balanceRepo, counterRepo, store)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	staffHandler := staff.NewHandler(staffService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		staff.RegisterRoutes(api, staffHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	}

	return nil
}
