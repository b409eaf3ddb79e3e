package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quiz-parlement-backend/models"
	"quiz-parlement-backend/utils"
)

// QuestionFilter restreint la liste des questions par niveau et/ou statut.
type QuestionFilter struct {
	LevelID  *uuid.UUID
	IsActive *bool
}

// AnswerInput est une réponse proposée dans la charge utile d'une question.
// ID est conservé s'il est fourni, sinon un identifiant stable est attribué.
type AnswerInput struct {
	ID        *uuid.UUID           `json:"id"`
	Text      models.LocalizedText `json:"text"`
	IsCorrect bool                 `json:"isCorrect"`
}

// CreateQuestionInput est la charge utile de création d'une question.
type CreateQuestionInput struct {
	LevelID  uuid.UUID            `json:"level" validate:"required"`
	Text     models.LocalizedText `json:"text"`
	Answers  []AnswerInput        `json:"answers"`
	Order    *int                 `json:"order"`
	IsActive *bool                `json:"isActive"`
}

// UpdateQuestionInput porte une mise à jour partielle d'une question.
// Answers, s'il est fourni, remplace l'ensemble des quatre réponses.
type UpdateQuestionInput struct {
	LevelID  *uuid.UUID            `json:"level"`
	Text     *models.LocalizedText `json:"text"`
	Answers  []AnswerInput         `json:"answers"`
	Order    *int                  `json:"order"`
	IsActive *bool                 `json:"isActive"`
}

// ReorderPair associe une question à sa position cible.
type ReorderPair struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

func preloadLevelSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name_fr", "name_ar", "position")
}

func preloadOrderedAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("answers.position ASC")
}

// ensureAnswerIDs attribue un identifiant aux réponses historiques qui n'en
// ont pas. Idempotent : relire la même question redonne les mêmes ids.
func ensureAnswerIDs(db *gorm.DB, questions ...*models.Question) error {
	for _, q := range questions {
		for i := range q.Answers {
			if q.Answers[i].ID != uuid.Nil {
				continue
			}
			q.Answers[i].ID = uuid.New()
			if err := db.Model(&models.Answer{}).
				Where("question_id = ? AND position = ?", q.ID, q.Answers[i].Position).
				UpdateColumn("id", q.Answers[i].ID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// ListQuestions retourne les questions correspondant au filtre, triées par
// ordre, avec le résumé du niveau et les réponses dans l'ordre persisté.
func ListQuestions(db *gorm.DB, filter QuestionFilter) ([]models.Question, error) {
	query := db.Model(&models.Question{}).
		Preload("Level", preloadLevelSummary).
		Preload("Answers", preloadOrderedAnswers)

	if filter.LevelID != nil {
		query = query.Where("level_id = ?", *filter.LevelID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var questions []models.Question
	if err := query.Order("position ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	for i := range questions {
		if err := ensureAnswerIDs(db, &questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// GetQuestion retourne une question par id avec son niveau résolu.
func GetQuestion(db *gorm.DB, id uuid.UUID) (*models.Question, error) {
	var question models.Question
	err := db.Preload("Level", preloadLevelSummary).
		Preload("Answers", preloadOrderedAnswers).
		First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	if err := ensureAnswerIDs(db, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func validateQuestionText(msgs []string, text models.LocalizedText) []string {
	return validateLocalized(msgs, "le texte de la question", text, questionMin, questionMax)
}

func validateAnswers(msgs []string, answers []AnswerInput) []string {
	if len(answers) != models.AnswersPerQuestion {
		return append(msgs, "La question doit avoir exactement 4 réponses")
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		msgs = validateLocalized(msgs, "le texte de la réponse", a.Text, answerMin, answerMax)
	}
	if correct != 1 {
		msgs = append(msgs, "La question doit avoir exactement une réponse correcte")
	}
	return msgs
}

func buildAnswers(questionID uuid.UUID, inputs []AnswerInput) []models.Answer {
	answers := make([]models.Answer, 0, len(inputs))
	for i, in := range inputs {
		id := uuid.New()
		if in.ID != nil && *in.ID != uuid.Nil {
			id = *in.ID
		}
		answers = append(answers, models.Answer{
			ID:         id,
			QuestionID: questionID,
			Position:   i,
			Text:       trimLocalized(in.Text),
			IsCorrect:  in.IsCorrect,
		})
	}
	return answers
}

// CreateQuestion persiste une nouvelle question. Le niveau référencé doit
// exister et être actif. Si l'ordre est absent ou déjà pris dans le niveau,
// le prochain rang disponible (nombre de questions du niveau) est attribué.
func CreateQuestion(db *gorm.DB, in CreateQuestionInput) (*models.Question, error) {
	var msgs []string
	if m := utils.ValidateStruct(in); m != "" {
		msgs = append(msgs, m)
	}
	msgs = validateQuestionText(msgs, in.Text)
	msgs = validateAnswers(msgs, in.Answers)
	if len(msgs) > 0 {
		return nil, &ValidationError{strings.Join(msgs, ", ")}
	}

	var level models.Level
	err := db.First(&level, "id = ? AND is_active = ?", in.LevelID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{"Le niveau spécifié n'existe pas ou n'est pas actif"}
		}
		return nil, err
	}

	order, err := resolveQuestionOrder(db, in.LevelID, in.Order)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		ID:       uuid.New(),
		LevelID:  in.LevelID,
		Text:     trimLocalized(in.Text),
		Order:    order,
		IsActive: true,
	}
	if in.IsActive != nil {
		question.IsActive = *in.IsActive
	}
	question.Answers = buildAnswers(question.ID, in.Answers)

	if err := db.Create(&question).Error; err != nil {
		return nil, err
	}
	return GetQuestion(db, question.ID)
}

// resolveQuestionOrder retombe sur le prochain rang disponible quand l'ordre
// demandé est absent ou déjà occupé dans le niveau. Le comptage n'est pas
// sérialisé : deux créations concurrentes peuvent obtenir le même rang.
func resolveQuestionOrder(db *gorm.DB, levelID uuid.UUID, requested *int) (int, error) {
	var count int64
	if requested != nil && *requested >= 0 {
		var conflicts int64
		err := db.Model(&models.Question{}).
			Where("level_id = ? AND position = ?", levelID, *requested).
			Count(&conflicts).Error
		if err != nil {
			return 0, err
		}
		if conflicts == 0 {
			return *requested, nil
		}
	}
	if err := db.Model(&models.Question{}).Where("level_id = ?", levelID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// UpdateQuestion applique une mise à jour partielle. Un changement de niveau
// est revalidé (niveau actif) ; un changement d'ordre est rejeté si une autre
// question du niveau cible occupe déjà ce rang.
func UpdateQuestion(db *gorm.DB, id uuid.UUID, in UpdateQuestionInput) (*models.Question, error) {
	var question models.Question
	if err := db.Preload("Answers", preloadOrderedAnswers).First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	var msgs []string
	if in.Text != nil {
		msgs = validateQuestionText(msgs, *in.Text)
	}
	if in.Answers != nil {
		msgs = validateAnswers(msgs, in.Answers)
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{strings.Join(msgs, ", ")}
	}

	targetLevel := question.LevelID
	if in.LevelID != nil && *in.LevelID != question.LevelID {
		var level models.Level
		err := db.First(&level, "id = ? AND is_active = ?", *in.LevelID, true).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{"Le niveau spécifié n'existe pas ou n'est pas actif"}
			}
			return nil, err
		}
		targetLevel = *in.LevelID
	}

	if in.Order != nil && (*in.Order != question.Order || targetLevel != question.LevelID) {
		var conflicts int64
		err := db.Model(&models.Question{}).
			Where("level_id = ? AND position = ? AND id <> ?", targetLevel, *in.Order, id).
			Count(&conflicts).Error
		if err != nil {
			return nil, err
		}
		if conflicts > 0 {
			return nil, &ValidationError{"Une question avec cet ordre existe déjà dans ce niveau"}
		}
		question.Order = *in.Order
	}

	question.LevelID = targetLevel
	if in.Text != nil {
		question.Text = trimLocalized(*in.Text)
	}
	if in.IsActive != nil {
		question.IsActive = *in.IsActive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.Answers != nil {
			if err := tx.Delete(&models.Answer{}, "question_id = ?", id).Error; err != nil {
				return err
			}
			question.Answers = buildAnswers(id, in.Answers)
			if err := tx.Create(&question.Answers).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Answers", "Level").Save(&question).Error
	})
	if err != nil {
		return nil, err
	}
	return GetQuestion(db, id)
}

// DeleteQuestion supprime une question et ses réponses. Contrairement à la
// suppression d'un niveau, l'ordre des questions restantes n'est pas
// recompacté.
func DeleteQuestion(db *gorm.DB, id uuid.UUID) error {
	var question models.Question
	if err := db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Answer{}, "question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, "id = ?", id).Error
	})
}

// ReorderQuestions applique chaque paire (id, ordre) comme une mise à jour
// indépendante puis retourne la liste retriée du niveau. Aucun contrôle
// d'unicité ou de contiguïté du résultat : dernier écrit gagnant.
func ReorderQuestions(db *gorm.DB, levelID uuid.UUID, pairs []ReorderPair) ([]models.Question, error) {
	var level models.Level
	if err := db.First(&level, "id = ?", levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	for _, pair := range pairs {
		err := db.Model(&models.Question{}).
			Where("id = ?", pair.ID).
			UpdateColumn("position", pair.Order).Error
		if err != nil {
			return nil, err
		}
	}
	return ListQuestions(db, QuestionFilter{LevelID: &levelID})
}
