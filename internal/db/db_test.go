package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost user=postgres password=postgres dbname=hypermedia port=5432 sslmode=disable",
		Options{}.DSN())

	ssl := true
	opts := Options{Host: "db.internal", User: "app", Password: "secret", DBName: "projects", Port: 6543, SSLEnabled: &ssl}
	assert.Equal(t,
		"host=db.internal user=app password=secret dbname=projects port=6543 sslmode=require",
		opts.DSN())
}

func TestMigrate(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: NewLogger(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	assert.True(t, conn.Migrator().HasTable(&models.Project{}))
	assert.True(t, conn.Migrator().HasTable(&models.Task{}))
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKeyError(errors.New("boom")))
	assert.False(t, IsDuplicateKeyError(gorm.ErrRecordNotFound))
}
