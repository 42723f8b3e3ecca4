package postgres

import (
	"testing"

	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoolConfig(t *testing.T) {
	base := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "pw", DBName: "warehouse", SSLMode: "disable"}

	t.Run("valores por defecto", func(t *testing.T) {
		pc, err := buildPoolConfig(base)
		require.NoError(t, err)
		assert.Equal(t, int32(25), pc.MaxConns)
		assert.Equal(t, int32(0), pc.MinConns)
		assert.NotNil(t, pc.AfterConnect)
		assert.Equal(t, "db", pc.ConnConfig.Host)
		assert.Equal(t, "warehouse", pc.ConnConfig.Database)
	})

	t.Run("min acotado a max", func(t *testing.T) {
		cfg := base
		cfg.MaxConns = 4
		cfg.MinConns = 10
		pc, err := buildPoolConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, int32(4), pc.MaxConns)
		assert.Equal(t, int32(4), pc.MinConns)
	})

	t.Run("DATABASE_URL tiene prioridad", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = "postgres://u:p@other:6543/inv?sslmode=disable"
		pc, err := buildPoolConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "other", pc.ConnConfig.Host)
		assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	})

	t.Run("DSN inválido", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = "postgres://u:p@host:notaport/db"
		_, err := buildPoolConfig(cfg)
		require.Error(t, err)
	})
}
