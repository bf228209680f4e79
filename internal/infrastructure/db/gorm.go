package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	pingTimeout = 5 * time.Second
)

type Options struct {
	Driver   string
	DSN      string
	LogLevel string
}

// Open connects to the store selected by opt.Driver.
func Open(opt Options) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch opt.Driver {
	case DriverMySQL:
		dial = mysql.Open(opt.DSN)
	case DriverSQLite:
		dial = sqlite.Open(opt.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opt.Driver)
	}
	db, err := OpenGormWithDialector(dial, ParseLogLevel(opt.LogLevel))
	if err != nil {
		return nil, err
	}
	if opt.Driver == DriverSQLite {
		// one writer at a time; more connections only add SQLITE_BUSY
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenGormWithDialector applies pool settings and pings once. level defaults to Warn.
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func ParseLogLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
