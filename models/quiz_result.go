package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizResult est l'enregistrement immuable d'une tentative de quiz :
// aucune opération de mise à jour ou de suppression n'est exposée.
// Score est le nombre brut de bonnes réponses, jamais un pourcentage.
type QuizResult struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LevelID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"levelId"`
	Level      *Level         `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	SessionID  string         `gorm:"size:64;uniqueIndex" json:"sessionId"`
	Score      int            `json:"score"`
	TotalTime  float64        `json:"totalTime"`
	StartTime  time.Time      `json:"startTime"`
	EndTime    time.Time      `json:"endTime"`
	DeviceInfo datatypes.JSON `json:"deviceInfo,omitempty"`
	Answers    []QuizAnswer   `gorm:"foreignKey:ResultID" json:"answers"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// QuizAnswer est une réponse soumise dans une tentative. SelectedAnswer est
// l'index (0..3) dans l'ordre persisté des réponses de la question.
type QuizAnswer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResultID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null" json:"questionId"`
	Question       *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Position       int       `gorm:"not null" json:"-"`
	SelectedAnswer int       `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	TimeSpent      float64   `json:"timeSpent"`
}

func (a *QuizAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
