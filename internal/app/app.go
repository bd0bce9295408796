// -----------------------------------------------------------------------
// Last Modified: Monday, 1st September 2025 11:32:48 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/common"
	"github.com/ternarybob/imaginai/internal/handlers"
	"github.com/ternarybob/imaginai/internal/interfaces"
	"github.com/ternarybob/imaginai/internal/services/accounts"
	"github.com/ternarybob/imaginai/internal/services/community"
	"github.com/ternarybob/imaginai/internal/services/generator"
	"github.com/ternarybob/imaginai/internal/services/history"
	badgerstore "github.com/ternarybob/imaginai/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Domain services
	AccountService   *accounts.Service
	HistoryService   *history.Service
	GeneratorClient  *generator.Client
	CommunityService *community.Service

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	StatusHandler    *handlers.StatusHandler
	AccountHandler   *handlers.AccountHandler
	GenerateHandler  *handlers.GenerateHandler
	HistoryHandler   *handlers.HistoryHandler
	CommunityHandler *handlers.CommunityHandler
	PageHandler      *handlers.PageHandler
	WSHandler        *handlers.WebSocketHandler
}

// New creates and wires all application components
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize storage
	storageManager, err := badgerstore.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	logger.Debug().
		Str("storage", "badger").
		Str("path", cfg.Storage.Badger.Path).
		Msg("Storage layer initialized")

	// Initialize domain services
	slots := storageManager.SlotStorage()
	app.AccountService = accounts.NewService(slots, logger)
	app.HistoryService = history.NewService(slots, logger)
	app.GeneratorClient = generator.NewClient(&cfg.Generator, generator.WithLogger(logger))
	app.CommunityService = community.NewService(&cfg.Community, logger)

	// Initialize WebSocket handler before the generation handler so
	// generation events have somewhere to go
	app.WSHandler = handlers.NewWebSocketHandler(logger)

	// Initialize HTTP handlers
	app.APIHandler = handlers.NewAPIHandler()
	app.StatusHandler = handlers.NewStatusHandler(slots, logger)
	app.AccountHandler = handlers.NewAccountHandler(app.AccountService, logger)
	app.GenerateHandler = handlers.NewGenerateHandler(app.GeneratorClient, app.HistoryService, app.AccountService, app.WSHandler, logger)
	app.HistoryHandler = handlers.NewHistoryHandler(app.HistoryService, app.AccountService, logger)
	app.CommunityHandler = handlers.NewCommunityHandler(app.CommunityService, app.AccountService, logger)
	app.PageHandler = handlers.NewPageHandler(app.AccountService, logger, cfg.Pages.Dir, cfg.Logging.ClientDebug)

	logger.Info().Msg("Application components initialized")

	return app, nil
}

// Close shuts down application components in reverse dependency order
func (a *App) Close() {
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage manager")
		}
	}

	a.Logger.Info().Msg("Application closed")
}
