package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"quiz-parlement-backend/models"
	"quiz-parlement-backend/utils"
)

// CreateLevelInput est la charge utile de création d'un niveau.
type CreateLevelInput struct {
	Name        models.LocalizedText `json:"name"`
	Description models.LocalizedText `json:"description"`
	Key         string               `json:"key" validate:"required"`
	Order       int                  `json:"order" validate:"gte=0"`
	IsActive    *bool                `json:"isActive"`
}

// UpdateLevelInput porte une mise à jour partielle : seuls les champs non nil
// sont appliqués.
type UpdateLevelInput struct {
	Name        *models.LocalizedText `json:"name"`
	Description *models.LocalizedText `json:"description"`
	Key         *string               `json:"key"`
	Order       *int                  `json:"order"`
	IsActive    *bool                 `json:"isActive"`
}

// ListLevels retourne tous les niveaux (actifs et inactifs) triés par ordre.
func ListLevels(db *gorm.DB) ([]models.Level, error) {
	var levels []models.Level
	if err := db.Order("position ASC").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// CreateLevel valide l'entrée puis persiste un nouveau niveau. La clé et
// l'ordre doivent être uniques parmi les niveaux existants.
func CreateLevel(db *gorm.DB, in CreateLevelInput) (*models.Level, error) {
	var msgs []string
	if m := utils.ValidateStruct(in); m != "" {
		msgs = append(msgs, m)
	}
	msgs = validateLocalized(msgs, "le nom", in.Name, levelNameMin, levelNameMax)
	msgs = validateLocalized(msgs, "la description", in.Description, descriptionMin, descriptionMax)

	key := slug.Make(in.Key)
	if !models.IsValidLevelKey(key) {
		msgs = append(msgs, fmt.Sprintf("la clé doit être l'une de : %s", strings.Join(models.LevelKeys, ", ")))
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{strings.Join(msgs, ", ")}
	}

	var count int64
	if err := db.Model(&models.Level{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{"Une clé de niveau similaire existe déjà"}
	}
	if err := db.Model(&models.Level{}).Where("position = ?", in.Order).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{"Un niveau avec le même ordre existe déjà"}
	}

	level := models.Level{
		Name:        trimLocalized(in.Name),
		Description: trimLocalized(in.Description),
		Key:         key,
		Order:       in.Order,
		IsActive:    true,
	}
	if in.IsActive != nil {
		level.IsActive = *in.IsActive
	}
	if err := db.Create(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// UpdateLevel applique une mise à jour partielle. La clé et l'ordre restent
// uniques parmi les autres niveaux (le niveau lui-même est exclu du contrôle).
func UpdateLevel(db *gorm.DB, id uuid.UUID, in UpdateLevelInput) (*models.Level, error) {
	var level models.Level
	if err := db.First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	var msgs []string
	if in.Name != nil {
		msgs = validateLocalized(msgs, "le nom", *in.Name, levelNameMin, levelNameMax)
	}
	if in.Description != nil {
		msgs = validateLocalized(msgs, "la description", *in.Description, descriptionMin, descriptionMax)
	}

	key := level.Key
	if in.Key != nil {
		key = slug.Make(*in.Key)
		if !models.IsValidLevelKey(key) {
			msgs = append(msgs, fmt.Sprintf("la clé doit être l'une de : %s", strings.Join(models.LevelKeys, ", ")))
		}
	}
	if in.Order != nil && *in.Order < 0 {
		msgs = append(msgs, "l'ordre doit être un nombre positif")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{strings.Join(msgs, ", ")}
	}

	if in.Key != nil && key != level.Key {
		var count int64
		if err := db.Model(&models.Level{}).Where("key = ? AND id <> ?", key, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ValidationError{"Un autre niveau avec cette clé existe déjà"}
		}
		level.Key = key
	}
	if in.Order != nil && *in.Order != level.Order {
		var count int64
		if err := db.Model(&models.Level{}).Where("position = ? AND id <> ?", *in.Order, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ValidationError{"Un autre niveau avec cet ordre existe déjà"}
		}
		level.Order = *in.Order
	}

	if in.Name != nil {
		level.Name = trimLocalized(*in.Name)
	}
	if in.Description != nil {
		level.Description = trimLocalized(*in.Description)
	}
	if in.IsActive != nil {
		level.IsActive = *in.IsActive
	}

	if err := db.Save(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// DeleteLevel supprime un niveau puis recompacte l'ordre des niveaux restants
// (tout position > position supprimée est décrémenté) pour conserver une
// séquence 0..N-1 sans trou. Suppression et recompactage forment une seule
// transaction. Les questions rattachées ne sont pas touchées.
func DeleteLevel(db *gorm.DB, id uuid.UUID) error {
	var level models.Level
	if err := db.First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLevelNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Level{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Level{}).
			Where("position > ?", level.Order).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}
