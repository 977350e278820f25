package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"viet_commerce/config"
	"viet_commerce/internal/global"
)

func InitRegistry() {
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections đăng ký toàn bộ collections nghiệp vụ vào registry.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)

	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		logrus.Errorf("Failed to register database %s: %v", cfg.MongoDB_DBName, err)
		return err
	}

	colNames := []string{
		global.ColNames.Users,
		global.ColNames.Roles,
		global.ColNames.UserRoles,
		global.ColNames.Products,
		global.ColNames.Categories,
		global.ColNames.Brands,
		global.ColNames.Reviews,
		global.ColNames.Carts,
		global.ColNames.Orders,
		global.ColNames.Addresses,
		global.ColNames.Provinces,
		global.ColNames.Posts,
		global.ColNames.Files,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}
