package models

// Model is a paintable 3D model record. Mesh holds the model's mesh
// identifiers joined into one comma-delimited string; the backend treats it
// as opaque. UserID is nullable so directly-POSTed models can be ownerless.
type Model struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Filepath string `json:"filepath"`
	Mesh     string `gorm:"type:text" json:"mesh"`
	UserID   *uint  `json:"user_id,omitempty"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	PaintedModels []PaintedModel `gorm:"foreignKey:ModelID" json:"painted_models,omitempty"`
}
