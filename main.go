package main

import (
	"github.com/greenhabit/greenhabit/config"
	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/routes"
	"github.com/greenhabit/greenhabit/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Habit{},
		&models.Checkin{},
		&models.PointsTotal{},
		&models.Badge{},
		&models.Todo{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
