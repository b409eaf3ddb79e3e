package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clés de niveau autorisées.
const (
	LevelKeyBeginner     = "beginner"
	LevelKeyIntermediate = "intermediate"
	LevelKeyExpert       = "expert"
)

// LevelKeys liste les clés de niveau acceptées à la création.
var LevelKeys = []string{LevelKeyBeginner, LevelKeyIntermediate, LevelKeyExpert}

// Level représente un niveau de difficulté du quiz.
// Position est dense : les niveaux restants sont recompactés en 0..N-1
// à chaque suppression.
type Level struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        LocalizedText `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description LocalizedText `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Key         string        `gorm:"size:50;uniqueIndex" json:"key"`
	Order       int           `gorm:"column:position;index" json:"order"`
	IsActive    bool          `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (l *Level) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsValidLevelKey vérifie qu'une clé appartient à l'ensemble fermé des niveaux.
func IsValidLevelKey(key string) bool {
	for _, k := range LevelKeys {
		if key == k {
			return true
		}
	}
	return false
}
