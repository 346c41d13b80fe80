// Package main is the entry point for the laundry-service application.
//
// @title           Laundry Service API
// @version         1.0.0
// @description     Prices laundry orders at the minimum total cost.
//
//	Orders are covered by mixed packs, shirt packs, linen packs, loose units and fixed price items.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/laundry-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin JWT from POST /api/auth/token, as "Bearer <token>".
//
// @tag.name        Pricing
// @tag.description Order pricing, quotes and receipts
//
// @tag.name        Catalog
// @tag.description Price list administration
//
// @tag.name        Auth
// @tag.description Admin token issuance
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/laundry-service/docs" // swagger docs

	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
