package models

// LocalizedText porte les deux versions (français / arabe) d'un texte affiché.
// Embarqué dans les modèles avec un préfixe de colonne (name_fr, name_ar, ...).
type LocalizedText struct {
	FR string `gorm:"column:fr" json:"fr"`
	AR string `gorm:"column:ar" json:"ar"`
}

// IsComplete indique si les deux langues sont renseignées.
func (t LocalizedText) IsComplete() bool {
	return t.FR != "" && t.AR != ""
}
