package services

// NotFoundError signale une ressource absente ; l'HTTP la traduit en 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError signale une entrée invalide ou un conflit de contrainte ;
// l'HTTP la traduit en 400. Message regroupe toutes les violations.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrLevelNotFound           = &NotFoundError{"Niveau non trouvé"}
	ErrLevelNotFoundOrInactive = &NotFoundError{"Niveau non trouvé ou inactif"}
	ErrQuestionNotFound        = &NotFoundError{"Question non trouvée"}
	ErrResultNotFound          = &NotFoundError{"Résultat non trouvé"}
	ErrNoQuestions             = &NotFoundError{"Aucune question disponible pour ce niveau"}
)
