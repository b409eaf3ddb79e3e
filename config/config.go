package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/models"
)

var DB *gorm.DB

// InitDB ouvre la connexion PostgreSQL depuis l'environnement, règle le pool
// et migre les modèles.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Africa/Casablanca",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Références par id sans contraintes FK : les résultats historiques
	// peuvent pointer vers des niveaux ou questions supprimés.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.L.Fatalw("connexion à la base impossible", "error", err)
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		logger.L.Fatalw("récupération de sql.DB impossible", "error", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(DB); err != nil {
		logger.L.Fatalw("migration impossible", "error", err)
	}
	logger.L.Infow("base connectée et migrée")
}

// Migrate crée ou met à jour le schéma des collections du quiz.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Level{},
		&models.Question{},
		&models.Answer{},
		&models.QuizResult{},
		&models.QuizAnswer{},
	)
}
