package services_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/models"
	"quiz-parlement-backend/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func mustCreateLevel(t *testing.T, db *gorm.DB, key string, order int) *models.Level {
	t.Helper()
	level, err := services.CreateLevel(db, services.CreateLevelInput{
		Name:        models.LocalizedText{FR: "Niveau " + key, AR: "مستوى " + key},
		Description: models.LocalizedText{FR: "Description du niveau " + key, AR: "وصف المستوى " + key},
		Key:         key,
		Order:       order,
	})
	require.NoError(t, err)
	return level
}

// fourAnswers construit quatre réponses valides dont celle à l'index correct
// est la bonne.
func fourAnswers(correct int) []services.AnswerInput {
	answers := make([]services.AnswerInput, 0, 4)
	for i := 0; i < 4; i++ {
		answers = append(answers, services.AnswerInput{
			Text:      models.LocalizedText{FR: fmt.Sprintf("Réponse %d", i), AR: fmt.Sprintf("جواب %d", i)},
			IsCorrect: i == correct,
		})
	}
	return answers
}

func mustCreateQuestion(t *testing.T, db *gorm.DB, levelID uuid.UUID, correct int) *models.Question {
	t.Helper()
	question, err := services.CreateQuestion(db, services.CreateQuestionInput{
		LevelID: levelID,
		Text:    models.LocalizedText{FR: "Quel est le rôle de la chambre ?", AR: "ما هو دور الغرفة البرلمانية ؟"},
		Answers: fourAnswers(correct),
	})
	require.NoError(t, err)
	return question
}
