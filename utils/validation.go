package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct applique les règles des tags `validate` et regroupe toutes
// les violations en un seul message lisible. Retourne "" si tout est valide.
func ValidateStruct(s interface{}) string {
	err := validate.Struct(s)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("le champ %s est requis", field)
	case "min":
		return fmt.Sprintf("le champ %s doit être au moins %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("le champ %s ne peut pas dépasser %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("le champ %s doit être supérieur ou égal à %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("le champ %s doit être l'une des valeurs : %s", field, fe.Param())
	default:
		return fmt.Sprintf("le champ %s est invalide (%s)", field, fe.Tag())
	}
}
