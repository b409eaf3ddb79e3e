package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswersPerQuestion : chaque question a exactement 4 réponses possibles.
const AnswersPerQuestion = 4

// Question est une question du quiz, rattachée à un niveau.
// Position est unique au sein du niveau et attribuée automatiquement
// (prochain rang disponible) si absente ou en conflit à la création.
type Question struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	LevelID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"levelId"`
	Level     *Level        `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Text      LocalizedText `gorm:"embedded;embeddedPrefix:text_" json:"text"`
	Order     int           `gorm:"column:position;index" json:"order"`
	IsActive  bool          `gorm:"default:true" json:"isActive"`
	Answers   []Answer      `gorm:"foreignKey:QuestionID" json:"answers"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Answer est une réponse possible d'une question. L'ID de la ligne sert
// d'identifiant stable côté client ; Position fixe l'ordre persisté (0..3)
// dans lequel le client adresse sa sélection.
type Answer struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID     `gorm:"type:uuid;not null;index" json:"-"`
	Position   int           `gorm:"not null" json:"-"`
	Text       LocalizedText `gorm:"embedded;embeddedPrefix:text_" json:"text"`
	IsCorrect  bool          `gorm:"default:false" json:"isCorrect"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
