package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quiz-parlement-backend/utils"
)

type sampleInput struct {
	Name  string `validate:"required"`
	Count int    `validate:"gte=0"`
	Mode  string `validate:"oneof=simple avance"`
}

func TestValidateStructValid(t *testing.T) {
	msg := utils.ValidateStruct(sampleInput{Name: "ok", Count: 1, Mode: "simple"})
	assert.Empty(t, msg)
}

func TestValidateStructJoinsMessages(t *testing.T) {
	msg := utils.ValidateStruct(sampleInput{Count: -1, Mode: "autre"})
	assert.Contains(t, msg, "le champ Name est requis")
	assert.Contains(t, msg, "le champ Count doit être supérieur ou égal à 0")
	assert.Contains(t, msg, "le champ Mode doit être l'une des valeurs")
	assert.Contains(t, msg, ", ")
}
