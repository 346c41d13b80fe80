//go:build !integration

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name        string
		authEnabled bool
	}{
		{name: "auth disabled", authEnabled: false},
		{name: "auth enabled", authEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Auth.Enabled = tt.authEnabled
			cfg.Auth.APIKeys = map[string]bool{"key": true}
			cfg.Server.SwaggerUser = "docs"
			services, err := InitializeServices(cfg, nil)
			require.NoError(t, err)
			defer services.Close()

			components := InitializeRouter(services, nil, cfg)

			assert.Nil(t, components.AuditLogger)
			assert.NotNil(t, components.Handlers.Pricing)
			assert.NotNil(t, components.Handlers.Catalog)
			assert.NotNil(t, components.Handlers.Health)
			assert.Equal(t, tt.authEnabled, components.Handlers.Auth != nil)
			assert.Equal(t, tt.authEnabled, components.Config.AuthEnabled)
			assert.Equal(t, cfg.Auth.APIKeys, components.Config.APIKeys)
			assert.Equal(t, cfg.Server.RateLimit, components.Config.RateLimit)
			assert.Equal(t, cfg.Server.RequestTimeout, components.Config.RequestTimeout)
			assert.Equal(t, "docs", components.Config.SwaggerUser)
		})
	}
}
