package config_test

import (
	"testing"

	"parfum/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "perfume_admin_products", cfg.Storage.SnapshotKey)
	assert.Equal(t, 8, cfg.ItemsPerPage)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Empty(t, cfg.RabbitMQ.URL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("ITEMS_PER_PAGE", 20)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.ItemsPerPage)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"unknown driver": func(v *viper.Viper) { v.Set("STORAGE_DRIVER", "redis") },
		"missing dsn":    func(v *viper.Viper) { v.Set("STORAGE_DSN", "") },
		"empty secret":   func(v *viper.Viper) { v.Set("JWT_SECRET", "") },
		"zero page size": func(v *viper.Viper) { v.Set("ITEMS_PER_PAGE", 0) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			mutate(v)
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}
