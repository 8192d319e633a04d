package database

import (
	"testing"

	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.Database{Driver: "sqlite", SQLitePath: "file:database_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "mongo"})
	assert.Error(t, err)
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "mybeing.db?_foreign_keys=on", sqliteDSN("mybeing.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "a.db?_foreign_keys=off", sqliteDSN("a.db?_foreign_keys=off"))
}
