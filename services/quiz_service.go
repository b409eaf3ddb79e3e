package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quiz-parlement-backend/models"
	"quiz-parlement-backend/utils"
)

// DefaultSessionLimit borne le nombre de questions servies par session.
const DefaultSessionLimit = 10

// quizTitleFallback remplace un nom de niveau incomplet à l'affichage.
var quizTitleFallback = models.LocalizedText{FR: "Quiz", AR: "اختبار"}

// LevelSummary est la projection publique d'un niveau dans une session.
type LevelSummary struct {
	ID   uuid.UUID            `json:"id"`
	Key  string               `json:"key"`
	Name models.LocalizedText `json:"name"`
}

// SessionAnswerView est une réponse telle que servie au client de quiz.
// IsCorrect est inclus dans la charge utile : comportement conservé tel quel
// du contrat existant, même s'il expose la grille de correction.
type SessionAnswerView struct {
	ID        uuid.UUID            `json:"id"`
	Text      models.LocalizedText `json:"text"`
	IsCorrect bool                 `json:"isCorrect"`
}

// SessionQuestionView est une question projetée pour la prise de quiz.
type SessionQuestionView struct {
	ID      uuid.UUID            `json:"id"`
	Text    models.LocalizedText `json:"text"`
	Answers []SessionAnswerView  `json:"answers"`
}

// QuizSession est la réponse de l'assemblage de session : un identifiant
// frais, le résumé du niveau et les questions sélectionnées.
type QuizSession struct {
	SessionID string                `json:"sessionId"`
	Level     LevelSummary          `json:"level"`
	Questions []SessionQuestionView `json:"questions"`
}

// GetSessionQuestions assemble une session de quiz pour un niveau actif :
// questions actives du niveau triées par ordre, tronquées à limit, et un
// identifiant de session unique par appel.
func GetSessionQuestions(db *gorm.DB, levelID uuid.UUID, limit int) (*QuizSession, error) {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}

	var level models.Level
	if err := db.First(&level, "id = ?", levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFoundOrInactive
		}
		return nil, err
	}
	if !level.IsActive {
		return nil, ErrLevelNotFoundOrInactive
	}

	var questions []models.Question
	err := db.Preload("Answers", preloadOrderedAnswers).
		Where("level_id = ? AND is_active = ?", levelID, true).
		Order("position ASC").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i := range questions {
		if err := ensureAnswerIDs(db, &questions[i]); err != nil {
			return nil, err
		}
	}

	session := QuizSession{
		SessionID: uuid.NewString(),
		Level:     LevelSummary{ID: level.ID, Key: level.Key, Name: level.Name},
		Questions: make([]SessionQuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		view := SessionQuestionView{ID: q.ID, Text: q.Text}
		for _, a := range q.Answers {
			view.Answers = append(view.Answers, SessionAnswerView{ID: a.ID, Text: a.Text, IsCorrect: a.IsCorrect})
		}
		session.Questions = append(session.Questions, view)
	}
	return &session, nil
}

// SubmittedAnswer est la sélection du client pour une question : un index
// (0..3) dans l'ordre persisté des réponses, pas un identifiant de réponse.
type SubmittedAnswer struct {
	QuestionID     uuid.UUID `json:"questionId" validate:"required"`
	SelectedAnswer int       `json:"selectedAnswer"`
	TimeSpent      float64   `json:"timeSpent" validate:"gte=0"`
}

// SubmitQuizInput est la charge utile de soumission d'un quiz.
type SubmitQuizInput struct {
	SessionID  string            `json:"sessionId" validate:"required"`
	LevelID    uuid.UUID         `json:"levelId" validate:"required"`
	Answers    []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    time.Time         `json:"endTime"`
	DeviceInfo datatypes.JSON    `json:"deviceInfo"`
}

// ResultQuestionView est une question dénormalisée dans un résultat.
type ResultQuestionView struct {
	Text    models.LocalizedText `json:"text"`
	Answers []SessionAnswerView  `json:"answers"`
}

// ResultAnswerView est une réponse soumise, résolue pour l'affichage.
type ResultAnswerView struct {
	Question       ResultQuestionView `json:"question"`
	SelectedAnswer int                `json:"selectedAnswer"`
	IsCorrect      bool               `json:"isCorrect"`
	TimeSpent      float64            `json:"timeSpent"`
}

// QuizTitleView identifie le quiz d'un résultat pour l'affichage.
type QuizTitleView struct {
	Title models.LocalizedText `json:"title"`
	Level string               `json:"level"`
}

// QuizResultView est la projection complète d'un résultat : le client reçoit
// les textes des questions et réponses sans aller-retour supplémentaire.
type QuizResultView struct {
	ID        uuid.UUID          `json:"id"`
	Quiz      QuizTitleView      `json:"quiz"`
	Score     int                `json:"score"`
	TotalTime float64            `json:"totalTime"`
	StartTime time.Time          `json:"startTime"`
	EndTime   time.Time          `json:"endTime"`
	CreatedAt time.Time          `json:"createdAt"`
	Answers   []ResultAnswerView `json:"answers"`
}

// SubmitQuiz valide un lot de réponses contre la banque de questions, calcule
// le score (nombre brut de bonnes réponses) et le temps total
// (endTime − startTime en secondes), puis persiste un résultat immuable.
// Le niveau doit exister ; son statut actif n'est pas revérifié ici.
func SubmitQuiz(db *gorm.DB, in SubmitQuizInput) (*QuizResultView, error) {
	if m := utils.ValidateStruct(in); m != "" {
		return nil, &ValidationError{m}
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, &ValidationError{"L'heure de fin doit être postérieure à l'heure de début"}
	}

	var level models.Level
	if err := db.First(&level, "id = ?", in.LevelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	// Identifiants distincts : couvre les ids inconnus, d'un autre niveau
	// ou inactifs via la comparaison de comptes.
	distinct := make([]uuid.UUID, 0, len(in.Answers))
	seen := make(map[uuid.UUID]struct{}, len(in.Answers))
	for _, a := range in.Answers {
		if _, ok := seen[a.QuestionID]; ok {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		distinct = append(distinct, a.QuestionID)
	}

	var questions []models.Question
	err := db.Preload("Answers", preloadOrderedAnswers).
		Where("id IN ? AND level_id = ? AND is_active = ?", distinct, in.LevelID, true).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) != len(distinct) {
		return nil, &ValidationError{"Certaines questions ne sont pas valides"}
	}

	byID := make(map[uuid.UUID]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	score := 0
	answers := make([]models.QuizAnswer, 0, len(in.Answers))
	for i, a := range in.Answers {
		question := byID[a.QuestionID]
		if a.SelectedAnswer < 0 || a.SelectedAnswer >= len(question.Answers) {
			return nil, fmt.Errorf("index de réponse hors limites (%d) pour la question %s", a.SelectedAnswer, a.QuestionID)
		}
		isCorrect := question.Answers[a.SelectedAnswer].IsCorrect
		if isCorrect {
			score++
		}
		answers = append(answers, models.QuizAnswer{
			QuestionID:     a.QuestionID,
			Position:       i,
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      isCorrect,
			TimeSpent:      a.TimeSpent,
		})
	}

	result := models.QuizResult{
		LevelID:    in.LevelID,
		SessionID:  in.SessionID,
		Score:      score,
		TotalTime:  in.EndTime.Sub(in.StartTime).Seconds(),
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		DeviceInfo: in.DeviceInfo,
		Answers:    answers,
	}
	if err := db.Create(&result).Error; err != nil {
		return nil, err
	}

	result.Level = &level
	for i := range result.Answers {
		result.Answers[i].Question = byID[result.Answers[i].QuestionID]
	}
	return NormalizeResult(&result), nil
}

// GetQuizResult retourne un résultat persisté avec ses questions et son
// niveau résolus, normalisé pour l'affichage.
func GetQuizResult(db *gorm.DB, resultID uuid.UUID) (*QuizResultView, error) {
	var result models.QuizResult
	err := db.Preload("Level").
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("quiz_answers.position ASC")
		}).
		Preload("Answers.Question").
		Preload("Answers.Question.Answers", preloadOrderedAnswers).
		First(&result, "id = ?", resultID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return NormalizeResult(&result), nil
}

// NormalizeResult projette un résultat brut en vue sûre pour l'affichage.
// Les résultats historiques peuvent référencer des niveaux ou questions
// modifiés ou supprimés depuis : chaque champ imbriqué manquant est remplacé
// par une valeur par défaut, jamais propagé comme absence.
func NormalizeResult(r *models.QuizResult) *QuizResultView {
	view := QuizResultView{
		ID:        r.ID,
		Quiz:      QuizTitleView{Title: quizTitleFallback, Level: ""},
		Score:     r.Score,
		TotalTime: r.TotalTime,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CreatedAt: r.CreatedAt,
		Answers:   make([]ResultAnswerView, 0, len(r.Answers)),
	}
	if r.Level != nil {
		if r.Level.Name.IsComplete() {
			view.Quiz.Title = r.Level.Name
		}
		view.Quiz.Level = r.Level.Key
	}
	for _, a := range r.Answers {
		av := ResultAnswerView{
			Question:       ResultQuestionView{Answers: []SessionAnswerView{}},
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      a.IsCorrect,
			TimeSpent:      a.TimeSpent,
		}
		if a.Question != nil {
			av.Question.Text = a.Question.Text
			for _, qa := range a.Question.Answers {
				av.Question.Answers = append(av.Question.Answers, SessionAnswerView{
					ID:        qa.ID,
					Text:      qa.Text,
					IsCorrect: qa.IsCorrect,
				})
			}
		}
		view.Answers = append(view.Answers, av)
	}
	return &view
}

// LevelStats agrège les résultats d'un niveau. Toutes les valeurs valent
// zéro quand aucun résultat n'existe, jamais null.
type LevelStats struct {
	TotalQuizzes int     `json:"totalQuizzes"`
	AverageScore float64 `json:"averageScore"`
	AverageTime  float64 `json:"averageTime"`
	MinScore     float64 `json:"minScore"`
	MaxScore     float64 `json:"maxScore"`
	MinTime      float64 `json:"minTime"`
	MaxTime      float64 `json:"maxTime"`
}

// RecentResult est un point de tendance : score, durée, date.
type RecentResult struct {
	Score     int       `json:"score"`
	TotalTime float64   `json:"totalTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// LevelStatsBlock imbrique les dix résultats les plus récents dans l'objet
// stats, comme dans le contrat existant.
type LevelStatsBlock struct {
	LevelStats
	RecentResults []RecentResult `json:"recentResults"`
}

// LevelStatsView regroupe le résumé du niveau et son bloc de statistiques.
type LevelStatsView struct {
	Level struct {
		ID   uuid.UUID            `json:"id"`
		Name models.LocalizedText `json:"name"`
	} `json:"level"`
	Stats LevelStatsBlock `json:"stats"`
}

// GetLevelStats agrège tous les résultats d'un niveau existant.
func GetLevelStats(db *gorm.DB, levelID uuid.UUID) (*LevelStatsView, error) {
	var level models.Level
	if err := db.First(&level, "id = ?", levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	var stats LevelStats
	err := db.Model(&models.QuizResult{}).
		Select(strings.Join([]string{
			"COUNT(*) AS total_quizzes",
			"COALESCE(AVG(score), 0) AS average_score",
			"COALESCE(AVG(total_time), 0) AS average_time",
			"COALESCE(MIN(score), 0) AS min_score",
			"COALESCE(MAX(score), 0) AS max_score",
			"COALESCE(MIN(total_time), 0) AS min_time",
			"COALESCE(MAX(total_time), 0) AS max_time",
		}, ", ")).
		Where("level_id = ?", levelID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	var recent []RecentResult
	err = db.Model(&models.QuizResult{}).
		Select("score", "total_time", "created_at").
		Where("level_id = ?", levelID).
		Order("created_at DESC").
		Limit(10).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []RecentResult{}
	}

	view := LevelStatsView{Stats: LevelStatsBlock{LevelStats: stats, RecentResults: recent}}
	view.Level.ID = level.ID
	view.Level.Name = level.Name
	return &view, nil
}

// ScorePercent dérive le pourcentage d'un score brut pour l'affichage.
// Le score stocké reste toujours le nombre de bonnes réponses.
func ScorePercent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
