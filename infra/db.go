package infra

import (
	"crumbs/config"
	"crumbs/models"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// SetupDB connects to postgres when DB_NAME is configured, otherwise to a private in-memory SQLite database.
func SetupDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Name != "" {
		sslmode := "disable"
		if cfg.IsProd() {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres database %s: %w", cfg.DB.Name, err)
		}
		slog.Info("setup postgres database", slog.String("host", cfg.DB.Host), slog.String("dbname", cfg.DB.Name))
		return db, nil
	}

	db, err := SetupMemoryDB()
	if err != nil {
		return nil, err
	}
	slog.Info("setup sqlite database (in-memory)")
	return db, nil
}

// SetupMemoryDB opens a fresh, uniquely named in-memory SQLite database.
func SetupMemoryDB() (*gorm.DB, error) {
	return OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// OpenSQLite opens a SQLite database restricted to a single connection. The connection must stay
// open for a named in-memory database to survive.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// SetupTokenDB opens the SQLite database that holds the logout blacklist.
func SetupTokenDB(path string) (*gorm.DB, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("token blacklist database: %w", err)
	}
	slog.Info("setup token blacklist sqlite database", slog.String("path", path))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.InventoryItem{}, &models.Recipe{})
}

func MigrateTokens(db *gorm.DB) error {
	return db.AutoMigrate(&models.BlacklistedToken{})
}
