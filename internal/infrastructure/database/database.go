package database

import (
	"fmt"
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// SchemaName is the dedicated postgres schema all content-api tables live in.
const SchemaName = "content_api"

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// Pool defaults shared by every connection path.
const DefaultConnMaxLifetime = 1 * time.Hour

const DefaultLogLevel = gormlogger.Silent

// Config holds database configuration
type Config struct {
	DatabaseURL string
	// ReplicaURL registers a read replica through dbresolver when set.
	ReplicaURL  string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   SchemaName + ".",
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().
			Str("error_code", "5c16fb53-d98c-4fc6-8bb4-9abd3c0b9e88").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if cfg.ReplicaURL != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReplicaURL)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Msg("Successfully connected to database")
	DB = db
	return DB, nil
}

// NewDB creates a new database connection using DSN
func NewDB(dsn string) (*gorm.DB, error) {
	return Connect(Config{
		DatabaseURL: dsn,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: DefaultConnMaxLifetime,
		LogLevel:    DefaultLogLevel,
	})
}

// Migration creates the service schema and auto-migrates every registered
// model. AutoMigrate is additive, so reruns are safe.
func Migration(db *gorm.DB) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", SchemaName)).Error; err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			log := logger.GetLogger()
			log.Error().
				Str("error_code", "75333e43-8157-4f0a-8e34-aa34e6e7c285").
				Err(err).
				Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}
	return nil
}
