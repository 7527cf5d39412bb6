package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"kanboard/internal/config"
	"kanboard/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config, log gormlogger.Interface) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: log}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}

// SQLiteDSN enables foreign keys so list and card rows cascade like they do
// on postgres.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate brings the schema up to date. Postgres uses the embedded SQL
// migrations; sqlite is created from the gorm models.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return migratePostgres(cfg.MigrateURL())
	case config.DriverSQLite:
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// AutoMigrate creates the boards, lists and cards tables from the models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Board{}, &model.List{}, &model.Card{})
}

func migratePostgres(databaseURL string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
