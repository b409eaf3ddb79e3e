package services

import (
	"fmt"
	"strings"

	"quiz-parlement-backend/models"
)

// Bornes de longueur héritées du schéma de contenu.
const (
	levelNameMin   = 2
	levelNameMax   = 50
	descriptionMin = 10
	descriptionMax = 500
	questionMin    = 10
	questionMax    = 500
	answerMin      = 1
	answerMax      = 200
)

// validateLocalized vérifie la présence et la longueur des deux langues d'un
// texte bilingue et accumule les violations en messages lisibles.
func validateLocalized(msgs []string, label string, t models.LocalizedText, min, max int) []string {
	msgs = checkLang(msgs, label+" en français", strings.TrimSpace(t.FR), min, max)
	msgs = checkLang(msgs, label+" en arabe", strings.TrimSpace(t.AR), min, max)
	return msgs
}

func checkLang(msgs []string, label, value string, min, max int) []string {
	length := len([]rune(value))
	switch {
	case length == 0:
		msgs = append(msgs, fmt.Sprintf("%s est requis", label))
	case length < min:
		msgs = append(msgs, fmt.Sprintf("%s doit contenir au moins %d caractères", label, min))
	case length > max:
		msgs = append(msgs, fmt.Sprintf("%s ne peut pas dépasser %d caractères", label, max))
	}
	return msgs
}

func trimLocalized(t models.LocalizedText) models.LocalizedText {
	return models.LocalizedText{FR: strings.TrimSpace(t.FR), AR: strings.TrimSpace(t.AR)}
}
