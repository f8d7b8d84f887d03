package models

// Color is a palette entry. Material is the natural de-duplication key:
// save-model looks colors up by (hexcode, material) before creating new rows,
// and the unique index is the only guard against a duplicate-insert race.
type Color struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Hexcode  string `gorm:"size:20" json:"hexcode"`
	Material string `gorm:"unique;size:120" json:"material"`

	PaintedModels []PaintedModel `gorm:"foreignKey:ColorID" json:"painted_models,omitempty"`
}
