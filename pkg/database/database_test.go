package database

import (
	"path/filepath"
	"testing"

	"it-inventory/internal/config"
	"it-inventory/internal/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	l, _ := test.NewNullLogger()
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "inventory.db"),
	}

	db, err := ConnectDB(cfg, l)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	// migrations are repeatable
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&model.AssetMovement{}))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	l, _ := test.NewNullLogger()
	_, err := ConnectDB(&config.Config{DBDriver: "oracle"}, l)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
