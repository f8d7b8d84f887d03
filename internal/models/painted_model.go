package models

// PaintedModel links one material region of a Model to a Color. There is no
// uniqueness constraint on (ModelID, ColorID): the same pair may be painted
// more than once, and update matching happens by the Color's material name.
// Deleting a Model or Color does not cascade here; orphaned rows are
// tolerated, matching the contract the frontend was built against.
type PaintedModel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	ModelID uint   `gorm:"index" json:"model_id"`
	Model   *Model `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	ColorID uint   `gorm:"index" json:"color_id"`
	Color   *Color `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

func (PaintedModel) TableName() string {
	return "painted_models"
}
