package main

import (
	"os"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/api"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/config"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/service"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Info("no .env file found, reading environment variables directly", nil)
	}

	// Load the arena configuration (required). Path may be provided via
	// ARENA_CONFIG or defaults to ./arena_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvArenaConfig)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": configPath, "hint": "create an arena_config.json with an 'ability_list' array of ability objects (name,archetype,req_level,effect{kind,value}) and optional keys: bands, server.address, base_hp, max_turns, turn_seconds"})
	}

	// DATABASE_URL selects Postgres; otherwise the SQLite file at
	// ARENA_DB (defaults to ./data/arena.db for local development).
	dbPath := os.Getenv(constants.EnvArenaDB)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, os.Getenv(constants.EnvDatabaseURL), cfg.Abilities)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewGormRepository(db, cfg.Abilities, cfg.BaseHP)
	engine := service.NewEngine(repo, cfg.Bands, cfg.MaxTurns, cfg.TurnTimeout)
	handler := api.NewArenaHandler(engine, repo)

	startStalledSweeper(engine, cfg.StalledAfter)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, handler.GetVersion)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteAbilities, handler.ListAbilities)
		protected.POST(constants.RouteMatchQueue, handler.EnqueueMatch)
		protected.GET(constants.RouteMatchByID, handler.GetMatch)
		protected.POST(constants.RouteMatchAct, handler.Act)
		protected.POST(constants.RouteMatchTimeout, handler.ClaimTimeout)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
