package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	game_constants "Kiadisa/constants/game"
	"Kiadisa/models/postgres"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")
	verbose := os.Getenv("VERBOSE_POSTGRES")

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		user, password, host, port, database)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL: %v", err)
		return nil, err
	}

	gormConfig := &gorm.Config{}
	if verbose == "true" {
		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
			},
		)
		gormConfig.Logger = newLogger
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		postgres.User{},
		postgres.UserStats{},
		postgres.GameSession{},
		postgres.GamePlayer{},
		postgres.Question{},
		postgres.Round{},
		postgres.Answer{},
		postgres.Vote{})
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Println("PostgreSQL database migrated successfully")

	return SeedQuestions(db)
}

// SeedQuestions fills an empty question pool with a starter set per
// mini-game so a fresh deployment can run rounds immediately.
func SeedQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&postgres.Question{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []postgres.Question{
		{Text: "Quelle est votre citation inspirante préférée ?", GameType: game_constants.MiniGameKikadi, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Quel est le film que tu pourrais revoir cent fois ?", GameType: game_constants.MiniGameKikadi, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Raconte-nous ton plus gros mensonge d'enfance", GameType: game_constants.MiniGameKidivrai, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Raconte une anecdote de voyage improbable", GameType: game_constants.MiniGameKidivrai, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Qui a déjà mangé quelque chose qui était tombé par terre ?", GameType: game_constants.MiniGameKideja, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Qui a déjà menti pour éviter une soirée ?", GameType: game_constants.MiniGameKideja, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Qui de vous est le plus peureux ?", GameType: game_constants.MiniGameKidenous, Category: "general", Ambiance: game_constants.AmbianceSafe},
		{Text: "Qui de vous oublierait sa propre valise ?", GameType: game_constants.MiniGameKidenous, Category: "general", Ambiance: game_constants.AmbianceSafe},
	}
	if err := db.Create(&starter).Error; err != nil {
		return fmt.Errorf("seeding questions failed: %w", err)
	}
	log.Printf("Question pool seeded with %d starter questions", len(starter))
	return nil
}
