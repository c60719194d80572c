package database

import (
	"alx_travel_app/pkg/models"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
	LogLevel   string
	Retries    int
	RetryDelay time.Duration
}

func ConfigFromEnv() Config {
	retries, err := strconv.Atoi(getEnv("DB_CONNECT_RETRIES", "10"))
	if err != nil || retries < 1 {
		retries = 10
	}
	return Config{
		Driver:     getEnv("DB_DRIVER", "postgres"),
		Host:       getEnv("DB_HOST", "postgres"),
		Port:       getEnv("DB_PORT", "5432"),
		User:       getEnv("DB_USER", "program"),
		Password:   getEnv("DB_PASSWORD", "test"),
		Name:       getEnv("DB_NAME", "listings"),
		SSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "listings.db"),
		LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		Retries:    retries,
		RetryDelay: 5 * time.Second,
	}
}

func (c Config) DSN() string {
	if c.Driver == "sqlite" {
		return sqliteDSN(c.SQLitePath)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Open connects, tunes the pool and migrates the schema.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		log.Printf("Connecting to database: %s@%s:%s/%s", cfg.User, cfg.Host, cfg.Port, cfg.Name)
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		log.Printf("Opening sqlite database: %s", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	var db *gorm.DB
	var err error
	for i := 0; i < retries; i++ {
		db, err = gorm.Open(dialector, gormConfig(cfg.LogLevel))
		if err == nil {
			break
		}
		log.Printf("Database connection attempt %d/%d failed: %v", i+1, retries, err)
		if i < retries-1 {
			time.Sleep(cfg.RetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database connection established successfully")
	return db, nil
}

// OpenSQLite opens a migrated sqlite database with foreign keys enforced.
// Pass ":memory:" for a throwaway database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig("silent"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" is a new database
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}

// Translate maps driver errors onto models.ErrConstraintViolation.
// gorm.ErrRecordNotFound and nil pass through untouched.
func Translate(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrConstraintViolation) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%w: %w", models.ErrConstraintViolation, err)
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"constraint failed", "violates", "not null", "value too long"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", models.ErrConstraintViolation, err)
		}
	}
	return err
}

func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel(level)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
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

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
