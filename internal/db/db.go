// Package db opens and migrates the projects database
package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/logger"
)

// Connection defaults
const (
	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultUser     = "postgres"
	DefaultPassword = "postgres"
	DefaultDBName   = "hypermedia"
	// SlowQueryThreshold is the duration above which queries are logged as slow
	SlowQueryThreshold = 200 * time.Millisecond
)

// Options configures the Postgres connection. Zero values fall back to the
// defaults above.
type Options struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	Port     int    `yaml:"port"`
	// SSLEnabled requires TLS. Unset means disabled.
	SSLEnabled *bool               `yaml:"ssl"`
	LogLevel   gormlogger.LogLevel `yaml:"-"`
}

// DSN returns the Postgres connection string of o with defaults applied
func (o Options) DSN() string {
	o = o.withDefaults()
	sslMode := "disable"
	if o.SSLEnabled != nil && *o.SSLEnabled {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		o.Host, o.User, o.Password, o.DBName, o.Port, sslMode)
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.User == "" {
		o.User = DefaultUser
	}
	if o.Password == "" {
		o.Password = DefaultPassword
	}
	if o.DBName == "" {
		o.DBName = DefaultDBName
	}
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.LogLevel == 0 {
		o.LogLevel = gormlogger.Warn
	}
	return o
}

// New connects to Postgres and migrates the schema
func New(opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()
	conn, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{
		Logger: NewLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d/%s: %w", opts.Host, opts.Port, opts.DBName, err)
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	logger.Infof("Connected to database %s on %s:%d", opts.DBName, opts.Host, opts.Port)
	return conn, nil
}

// NewLogger returns a gorm logger writing through the application logger.
// Record-not-found errors are not logged, handlers turn them into 404s.
func NewLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(logWriter{}, gormlogger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// logWriter adapts the application logger to gorm's Writer
type logWriter struct{}

func (logWriter) Printf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Migrate creates or updates the schema of every model
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Project{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// IsDuplicateKeyError reports whether err is a unique constraint violation
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(postgres.Dialector{}.Translate(err), gorm.ErrDuplicatedKey)
}
