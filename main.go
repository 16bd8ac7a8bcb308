package main

import (
	"context"
	"embed"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"tasweeq/internal/config"
	"tasweeq/internal/database"
	"tasweeq/internal/events"
	"tasweeq/internal/logging"
	"tasweeq/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, dotenvErr, err := config.LoadConfig()
	if err != nil {
		boot := logging.NewLogger("")
		boot.Error().Err(err).Msg("error loading config")
		return
	}
	log := logging.NewLogger(cfg.Env)
	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg("no .env file loaded; using process environment")
	}

	dbLevel := logger.Warn
	if cfg.IsDevelopment() {
		dbLevel = logger.Info
	}
	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: dbLevel,
	})
	if err != nil {
		log.Error().Err(err).Msg("error opening database")
		return
	}

	dbService := services.NewDbServices(db)
	keyringService := services.NewKeyringService()

	policy := services.LatestSubmissionWins
	if cfg.StaleResults == config.StaleResultsApply {
		policy = services.LastResolvedWins
	}
	session := services.NewGenerationSessionService(nil, services.GenerationSessionOptions{
		Gate:   keyringService,
		Drafts: dbService.AppSettings,
		Policy: policy,
		Logger: &log,
	})

	app := NewApp(cfg, log, session, dbService.AppSettings, keyringService)
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Tasweeq",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Tasweeq",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			events.EnableRuntimeEmitter()
			dbService.StartDbServices(ctx)
			if err := keyringService.Startup(); err != nil {
				log.Warn().Err(err).Msg("keyring unavailable; falling back to environment")
			}
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.AppSettings,
		},
	})

	if err != nil {
		log.Error().Err(err).Msg("wails run failed")
	}
}
