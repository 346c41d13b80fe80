// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/http"
	"github.com/rs/zerolog/log"
)

// App is the wired HTTP application and the resources it owns.
type App struct {
	Router   *http.Router
	services *ServiceComponents
	database *DatabaseComponents
	router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)

	services, err := InitializeServices(cfg, db)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}

	routerComponents := InitializeRouter(services, db, cfg)

	log.Info().
		Bool("database", db != nil).
		Bool("redis", services.Redis != nil).
		Bool("auth", cfg.Auth.Enabled).
		Msg("Application initialized")

	return &App{
		Router:   http.NewRouter(routerComponents.Handlers, routerComponents.Config),
		services: services,
		database: db,
		router:   routerComponents,
	}, nil
}

// Close flushes pending log entries and releases every resource. Call it after
// the HTTP server has stopped.
func (a *App) Close(ctx context.Context) error {
	a.Router.Close()
	a.router.AuditLogger.Stop()
	a.services.Close()
	return a.database.Close(ctx)
}
