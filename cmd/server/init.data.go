package main

import (
	"context"

	authsvc "viet_commerce/internal/api/auth/service"
	ordersvc "viet_commerce/internal/api/order/service"
	"viet_commerce/internal/global"
	"viet_commerce/internal/logger"
)

// InitDefaultData seed dữ liệu mặc định: role hệ thống, danh sách tỉnh/thành
// và tài khoản admin (nếu có cấu hình). Toàn bộ đều idempotent.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx := context.Background()

	// 1. Seed 12 role hệ thống (4 thao tác x 3 nhóm tài nguyên)
	roleService, err := authsvc.NewRoleService()
	if err != nil {
		log.Fatalf("Failed to create role service: %v", err)
	}
	if err := roleService.EnsureDefaultRoles(ctx); err != nil {
		log.Fatalf("Failed to seed default roles: %v", err)
	}
	log.Info("✅ [INIT] Default roles seeded")

	// 2. Seed danh sách tỉnh/thành
	provinceService, err := ordersvc.NewProvinceService()
	if err != nil {
		log.Fatalf("Failed to create province service: %v", err)
	}
	if err := provinceService.EnsureProvinces(ctx); err != nil {
		log.Fatalf("Failed to seed provinces: %v", err)
	}
	log.Info("✅ [INIT] Provinces seeded")

	// 3. Seed tài khoản admin từ ADMIN_EMAIL/ADMIN_PASSWORD (tùy chọn)
	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to create user service: %v", err)
	}
	cfg := global.MongoDB_ServerConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	} else if err := userService.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Warnf("Failed to seed admin user: %v", err)
	} else {
		log.Info("✅ [INIT] Admin user ensured")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
