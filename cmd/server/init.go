package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"viet_commerce/config"
	authsvc "viet_commerce/internal/api/auth/service"
	"viet_commerce/internal/api/events"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/database"
	"viet_commerce/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (global.InitValidator đăng ký các custom validator:
// no_xss, strong_password, exists, object_id, vn_phone)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database và đảm bảo indexes
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := database.EnsureIndexes(db); err != nil {
		logrus.Fatalf("Failed to ensure indexes: %v", err)
	}
}

// InitAuthSystem khởi tạo AuthManager và đăng ký event handler invalidate
// cache phân quyền khi user_roles thay đổi. Gọi sau InitRegistry.
func InitAuthSystem() {
	userService, err := authsvc.NewUserService()
	if err != nil {
		logrus.Fatalf("Failed to create user service: %v", err)
	}
	userRoleService, err := authsvc.NewUserRoleService()
	if err != nil {
		logrus.Fatalf("Failed to create user role service: %v", err)
	}

	middleware.InitAuthManager(userService, userRoleService, []byte(global.MongoDB_ServerConfig.JwtSecret))
	logrus.Info("Initialized auth manager")

	// Gán/gỡ role qua bất kỳ đường nào (kể cả CRUD admin) đều làm cache
	// role grants của user đó hết hiệu lực
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.ColNames.UserRoles {
			return
		}
		userID := events.GetUserIDFromDocument(e.Document)
		if userID.IsZero() {
			return
		}
		middleware.GetAuthManager().InvalidateGrants(userID.Hex())
	})
	logrus.Info("Registered data change handlers")
}
