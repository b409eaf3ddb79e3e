package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-parlement-backend/models"
	"quiz-parlement-backend/services"
)

func submitInput(levelID uuid.UUID, answers []services.SubmittedAnswer) services.SubmitQuizInput {
	start := time.Now().Add(-90 * time.Second)
	return services.SubmitQuizInput{
		SessionID: uuid.NewString(),
		LevelID:   levelID,
		Answers:   answers,
		StartTime: start,
		EndTime:   start.Add(90 * time.Second),
	}
}

func TestGetSessionQuestionsInactiveLevel(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	mustCreateQuestion(t, db, level.ID, 0)

	inactive := false
	_, err := services.UpdateLevel(db, level.ID, services.UpdateLevelInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = services.GetSessionQuestions(db, level.ID, 10)
	assert.ErrorIs(t, err, services.ErrLevelNotFoundOrInactive)

	_, err = services.GetSessionQuestions(db, uuid.New(), 10)
	assert.ErrorIs(t, err, services.ErrLevelNotFoundOrInactive)
}

func TestGetSessionQuestionsEmptyLevel(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)

	_, err := services.GetSessionQuestions(db, level.ID, 10)
	assert.ErrorIs(t, err, services.ErrNoQuestions)

	// Une question inactive ne compte pas.
	question := mustCreateQuestion(t, db, level.ID, 0)
	off := false
	_, err = services.UpdateQuestion(db, question.ID, services.UpdateQuestionInput{IsActive: &off})
	require.NoError(t, err)

	_, err = services.GetSessionQuestions(db, level.ID, 10)
	assert.ErrorIs(t, err, services.ErrNoQuestions)
}

func TestGetSessionQuestionsLimitAndSessionID(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	for i := 0; i < 3; i++ {
		mustCreateQuestion(t, db, level.ID, i%4)
	}

	first, err := services.GetSessionQuestions(db, level.ID, 2)
	require.NoError(t, err)
	assert.Len(t, first.Questions, 2)
	assert.Equal(t, level.ID, first.Level.ID)
	assert.Equal(t, models.LevelKeyBeginner, first.Level.Key)
	require.NotEmpty(t, first.SessionID)

	// Chaque appel émet un identifiant de session distinct.
	second, err := services.GetSessionQuestions(db, level.ID, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	// Limite par défaut quand la valeur est absente ou invalide.
	all, err := services.GetSessionQuestions(db, level.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all.Questions, 3)
}

func TestSubmitQuizScoring(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	q1 := mustCreateQuestion(t, db, level.ID, 1)
	q2 := mustCreateQuestion(t, db, level.ID, 3)

	session, err := services.GetSessionQuestions(db, level.ID, 10)
	require.NoError(t, err)
	require.Len(t, session.Questions, 2)

	// Les deux bonnes réponses : score brut de 2.
	result, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: 1, TimeSpent: 12},
		{QuestionID: q2.ID, SelectedAnswer: 3, TimeSpent: 20},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	assert.InDelta(t, 90, result.TotalTime, 0.001)
	require.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.Equal(t, q1.Text, result.Answers[0].Question.Text)
	require.Len(t, result.Answers[0].Question.Answers, 4)
	assert.Equal(t, level.Name, result.Quiz.Title)
	assert.Equal(t, level.Key, result.Quiz.Level)

	// Une bonne réponse sur deux : score de 1.
	partial, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: 1, TimeSpent: 10},
		{QuestionID: q2.ID, SelectedAnswer: 0, TimeSpent: 10},
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, partial.Score)
}

func TestSubmitQuizRejectsForeignQuestions(t *testing.T) {
	db := newTestDB(t)
	levelA := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	levelB := mustCreateLevel(t, db, models.LevelKeyIntermediate, 1)
	qa := mustCreateQuestion(t, db, levelA.ID, 0)
	qb := mustCreateQuestion(t, db, levelB.ID, 0)

	// Question d'un autre niveau.
	_, err := services.SubmitQuiz(db, submitInput(levelA.ID, []services.SubmittedAnswer{
		{QuestionID: qa.ID, SelectedAnswer: 0},
		{QuestionID: qb.ID, SelectedAnswer: 0},
	}))
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "ne sont pas valides")

	// Question inactive.
	off := false
	_, err = services.UpdateQuestion(db, qa.ID, services.UpdateQuestionInput{IsActive: &off})
	require.NoError(t, err)
	_, err = services.SubmitQuiz(db, submitInput(levelA.ID, []services.SubmittedAnswer{
		{QuestionID: qa.ID, SelectedAnswer: 0},
	}))
	require.ErrorAs(t, err, &ve)

	// Identifiant inconnu.
	_, err = services.SubmitQuiz(db, submitInput(levelA.ID, []services.SubmittedAnswer{
		{QuestionID: uuid.New(), SelectedAnswer: 0},
	}))
	require.ErrorAs(t, err, &ve)

	// Aucun résultat ne doit avoir été persisté.
	var count int64
	require.NoError(t, db.Model(&models.QuizResult{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitQuizOutOfRangeIndexIsHardError(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	question := mustCreateQuestion(t, db, level.ID, 0)

	_, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: question.ID, SelectedAnswer: 7},
	}))
	require.Error(t, err)

	// Erreur interne, pas une erreur de validation ni un 404.
	var ve *services.ValidationError
	var nf *services.NotFoundError
	assert.NotErrorAs(t, err, &ve)
	assert.NotErrorAs(t, err, &nf)

	var count int64
	require.NoError(t, db.Model(&models.QuizResult{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitQuizLevelNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := services.SubmitQuiz(db, submitInput(uuid.New(), []services.SubmittedAnswer{
		{QuestionID: uuid.New(), SelectedAnswer: 0},
	}))
	assert.ErrorIs(t, err, services.ErrLevelNotFound)
}

func TestSubmitQuizRequiresAnswers(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)

	_, err := services.SubmitQuiz(db, submitInput(level.ID, nil))
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSubmitQuizDeduplicatesQuestionIDs(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	question := mustCreateQuestion(t, db, level.ID, 2)

	// Deux réponses sur la même question : les identifiants distincts sont
	// comparés au nombre de questions chargées, pas le nombre de réponses.
	result, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: question.ID, SelectedAnswer: 2, TimeSpent: 5},
		{QuestionID: question.ID, SelectedAnswer: 0, TimeSpent: 5},
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Len(t, result.Answers, 2)
}

func TestGetQuizResultNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := services.GetQuizResult(db, uuid.New())
	assert.ErrorIs(t, err, services.ErrResultNotFound)
}

func TestGetQuizResultNormalizesMissingData(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	question := mustCreateQuestion(t, db, level.ID, 0)

	created, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: question.ID, SelectedAnswer: 0, TimeSpent: 8},
	}))
	require.NoError(t, err)

	// Le contenu évolue après coup : question supprimée, nom de niveau
	// partiellement vidé.
	require.NoError(t, services.DeleteQuestion(db, question.ID))
	require.NoError(t, db.Model(&models.Level{}).Where("id = ?", level.ID).UpdateColumn("name_ar", "").Error)

	result, err := services.GetQuizResult(db, created.ID)
	require.NoError(t, err)

	// Titre de repli quand le nom bilingue est incomplet.
	assert.Equal(t, "Quiz", result.Quiz.Title.FR)
	assert.NotEmpty(t, result.Quiz.Title.AR)
	assert.Equal(t, level.Key, result.Quiz.Level)

	// La question supprimée est remplacée par des valeurs sûres, jamais
	// par une absence.
	require.Len(t, result.Answers, 1)
	answer := result.Answers[0]
	assert.Equal(t, models.LocalizedText{}, answer.Question.Text)
	assert.NotNil(t, answer.Question.Answers)
	assert.Empty(t, answer.Question.Answers)
	assert.Equal(t, 0, answer.SelectedAnswer)
	assert.InDelta(t, 8, answer.TimeSpent, 0.001)
}

func TestGetLevelStatsZeroDefaults(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)

	view, err := services.GetLevelStats(db, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Stats.TotalQuizzes)
	assert.Zero(t, view.Stats.AverageScore)
	assert.Zero(t, view.Stats.AverageTime)
	assert.Zero(t, view.Stats.MinScore)
	assert.Zero(t, view.Stats.MaxScore)
	assert.Zero(t, view.Stats.MinTime)
	assert.Zero(t, view.Stats.MaxTime)
	assert.NotNil(t, view.Stats.RecentResults)
	assert.Empty(t, view.Stats.RecentResults)
}

func TestGetLevelStatsAggregates(t *testing.T) {
	db := newTestDB(t)
	level := mustCreateLevel(t, db, models.LevelKeyBeginner, 0)
	q1 := mustCreateQuestion(t, db, level.ID, 1)
	q2 := mustCreateQuestion(t, db, level.ID, 2)

	_, err := services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: 1},
		{QuestionID: q2.ID, SelectedAnswer: 2},
	}))
	require.NoError(t, err)
	_, err = services.SubmitQuiz(db, submitInput(level.ID, []services.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: 0},
		{QuestionID: q2.ID, SelectedAnswer: 0},
	}))
	require.NoError(t, err)

	view, err := services.GetLevelStats(db, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Stats.TotalQuizzes)
	assert.InDelta(t, 1, view.Stats.AverageScore, 0.001)
	assert.InDelta(t, 0, view.Stats.MinScore, 0.001)
	assert.InDelta(t, 2, view.Stats.MaxScore, 0.001)
	assert.Len(t, view.Stats.RecentResults, 2)
	assert.Equal(t, level.Name, view.Level.Name)

	// recentResults vit à l'intérieur de l'objet stats dans la réponse.
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var shaped map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &shaped))
	assert.NotContains(t, shaped, "recentResults")
	var statsObj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(shaped["stats"], &statsObj))
	assert.Contains(t, statsObj, "recentResults")
	assert.Contains(t, statsObj, "totalQuizzes")
}

func TestGetLevelStatsLevelNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := services.GetLevelStats(db, uuid.New())
	assert.ErrorIs(t, err, services.ErrLevelNotFound)
}

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 0, services.ScorePercent(0, 0))
	assert.Equal(t, 0, services.ScorePercent(3, 0))
	assert.Equal(t, 50, services.ScorePercent(1, 2))
	assert.Equal(t, 67, services.ScorePercent(2, 3))
	assert.Equal(t, 100, services.ScorePercent(10, 10))
}
