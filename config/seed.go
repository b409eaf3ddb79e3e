package config

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/models"
)

// Seed initialise la base au premier démarrage : compte administrateur par
// défaut (depuis l'environnement) et les trois niveaux standards.
func Seed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedLevels(db)
}

func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.L.Warnw("ADMIN_USERNAME/ADMIN_PASSWORD absents, aucun admin créé")
		return nil
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Admin{Username: username, Password: string(hashed), IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.L.Infow("administrateur par défaut créé", "username", username)
	return nil
}

func seedLevels(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Level{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	levels := []models.Level{
		{
			Key:         models.LevelKeyBeginner,
			Order:       0,
			IsActive:    true,
			Name:        models.LocalizedText{FR: "Débutant", AR: "مبتدئ"},
			Description: models.LocalizedText{FR: "Découvrez les bases de la chambre parlementaire", AR: "اكتشف أساسيات الغرفة البرلمانية"},
		},
		{
			Key:         models.LevelKeyIntermediate,
			Order:       1,
			IsActive:    true,
			Name:        models.LocalizedText{FR: "Intermédiaire", AR: "متوسط"},
			Description: models.LocalizedText{FR: "Approfondissez le fonctionnement de l'institution", AR: "تعمق في طريقة عمل المؤسسة"},
		},
		{
			Key:         models.LevelKeyExpert,
			Order:       2,
			IsActive:    true,
			Name:        models.LocalizedText{FR: "Expert", AR: "خبير"},
			Description: models.LocalizedText{FR: "Maîtrisez les rouages de la procédure parlementaire", AR: "أتقن دواليب المسطرة البرلمانية"},
		},
	}
	if err := db.Create(&levels).Error; err != nil {
		return err
	}
	logger.L.Infow("niveaux par défaut créés", "count", len(levels))
	return nil
}
