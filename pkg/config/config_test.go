package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 30, cfg.MRP.HorizonDays)
	assert.Equal(t, 4, cfg.MRP.Workers)
	assert.Equal(t, 10, cfg.MRP.MaxBOMDepth)
	assert.Equal(t, 5*time.Minute, cfg.MRP.RunTimeout())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_SobrescribeDesdeEntorno(t *testing.T) {
	v := viper.New()
	v.Set("MRP_WORKERS", "8")
	v.Set("MRP_HORIZON_DAYS", 90)
	v.Set("DB_PORT", "6543")
	v.Set("DB_AUTO_MIGRATE", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 8, cfg.MRP.Workers)
	assert.Equal(t, 90, cfg.MRP.HorizonDays)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestFromViper_EnteroMalFormadoUsaDefecto(t *testing.T) {
	v := viper.New()
	v.Set("MRP_WORKERS", "muchos")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MRP.Workers)
}

func TestFromViper_RechazaParametrosMRPInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("MRP_MAX_BOM_DEPTH", 0)

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaContrasena(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "mrp", Password: "p@ss:word", DBName: "mrp", SSLMode: "disable"}
	assert.Equal(t, "postgres://mrp:p%40ss%3Aword@db:5432/mrp?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
