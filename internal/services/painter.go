package services

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"

	"gorm.io/gorm"
)

var ErrModelNotFound = errors.New("model not found")

// ColorInput is one palette entry in a save-model create request.
type ColorInput struct {
	Hexcode  string `json:"color_hexcode"`
	Material string `json:"color_material"`
}

// PaintEntry is one repaint instruction in a save-model update request,
// addressed by material name rather than by color or painted-model id.
type PaintEntry struct {
	Material string
	Hexcode  string
}

type SaveModelDTO struct {
	UserID   uint
	Name     string
	Filepath string
	Meshes   []string
	Colors   []ColorInput

	// Audit metadata
	IPAddress string
	UserAgent string
	RequestID string
}

type UpdatePaintDTO struct {
	ModelID uint
	Entries []PaintEntry

	UserID    *uint
	IPAddress string
	UserAgent string
	RequestID string
}

// PainterService implements the composite save-model workflow: a multi-step
// upsert across models, colors and painted_models.
type PainterService struct {
	db     *gorm.DB
	logger *slog.Logger
	audit  *AuditService
}

func NewPainterService(db *gorm.DB, logger *slog.Logger, audit *AuditService) *PainterService {
	return &PainterService{db: db, logger: logger, audit: audit}
}

// SaveModel persists a new model and its palette. The model and every new
// color are written through the base handle so each commits immediately and
// is visible to the next iteration's lookup; a duplicate (hexcode, material)
// pair later in the same request therefore finds the row created by the
// earlier one. The painted-model rows commit together at the end.
func (s *PainterService) SaveModel(dto SaveModelDTO) (*models.Model, error) {
	newModel := models.Model{
		Name:     dto.Name,
		Filepath: dto.Filepath,
		Mesh:     strings.Join(dto.Meshes, ","),
		UserID:   &dto.UserID,
	}
	if err := s.db.Create(&newModel).Error; err != nil {
		return nil, err
	}

	painted := make([]models.PaintedModel, 0, len(dto.Colors))
	for _, entry := range dto.Colors {
		color, err := s.findOrCreateColor(entry.Hexcode, entry.Material)
		if err != nil {
			return nil, err
		}
		painted = append(painted, models.PaintedModel{
			ModelID: newModel.ID,
			ColorID: color.ID,
		})
	}

	if len(painted) > 0 {
		if err := s.db.Create(&painted).Error; err != nil {
			return nil, err
		}
	}

	s.audit.LogAction(&dto.UserID, "SAVE_MODEL", strconv.FormatUint(uint64(newModel.ID), 10), map[string]interface{}{
		"name":   dto.Name,
		"colors": len(dto.Colors),
	}, dto.IPAddress, dto.UserAgent, dto.RequestID)

	return &newModel, nil
}

// UpdateModel repaints an existing model. Matching is by material name
// against the painted-model rows the model already has; the set is read once
// before the loop, so two entries for the same previously-unpainted material
// each take the create branch (the color itself still de-duplicates).
//
// Changing a hexcode mutates the shared color row in place: every other
// model painted with that color observes the change. That is the intended
// normalize-by-material behavior, not an accident.
func (s *PainterService) UpdateModel(dto UpdatePaintDTO) error {
	var existingModel models.Model
	if err := s.db.First(&existingModel, dto.ModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		return err
	}

	var existingPainted []models.PaintedModel
	if err := s.db.Preload("Color").Where("model_id = ?", dto.ModelID).Find(&existingPainted).Error; err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range dto.Entries {
			painted := matchByMaterial(existingPainted, entry.Material)
			if painted != nil {
				var color models.Color
				err := tx.First(&color, painted.ColorID).Error
				if err == nil {
					if color.Hexcode != entry.Hexcode {
						if err := tx.Model(&color).Update("hexcode", entry.Hexcode).Error; err != nil {
							return err
						}
					}
					continue
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				// Dangling color reference: materialize a replacement and repoint.
				fresh := models.Color{Hexcode: entry.Hexcode, Material: entry.Material}
				if err := s.db.Create(&fresh).Error; err != nil {
					return err
				}
				if err := tx.Model(painted).Update("color_id", fresh.ID).Error; err != nil {
					return err
				}
				continue
			}

			// No painted row for this material yet.
			color, err := s.findOrCreateColor(entry.Hexcode, entry.Material)
			if err != nil {
				return err
			}
			newPainted := models.PaintedModel{ModelID: dto.ModelID, ColorID: color.ID}
			if err := tx.Create(&newPainted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.LogAction(dto.UserID, "UPDATE_MODEL", strconv.FormatUint(uint64(dto.ModelID), 10), map[string]interface{}{
		"entries": len(dto.Entries),
	}, dto.IPAddress, dto.UserAgent, dto.RequestID)

	return nil
}

// findOrCreateColor reuses a color matching the (hexcode, material) pair or
// creates one through the base handle so its id commits immediately. Two
// concurrent creates of the same new pair can still race; the unique index
// on material turns the loser into a persistence error, same as the contract
// this replaces.
func (s *PainterService) findOrCreateColor(hexcode, material string) (*models.Color, error) {
	var color models.Color
	err := s.db.Where("hexcode = ? AND material = ?", hexcode, material).First(&color).Error
	if err == nil {
		return &color, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	color = models.Color{Hexcode: hexcode, Material: material}
	if err := s.db.Create(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func matchByMaterial(painted []models.PaintedModel, material string) *models.PaintedModel {
	for i := range painted {
		if painted[i].Color != nil && painted[i].Color.Material == material {
			return &painted[i]
		}
	}
	return nil
}
