package services

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

// setupTestDB opens a private in-memory database per call so tests cannot
// observe each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Model{}, &models.Color{}, &models.PaintedModel{}, &models.AuditLog{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func newTestPainter(t *testing.T) (*PainterService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	audit := NewAuditService(db, logger)
	return NewPainterService(db, logger, audit), db
}

func TestSaveModel(t *testing.T) {
	t.Run("Duplicate palette entries share one color", func(t *testing.T) {
		service, db := newTestPainter(t)

		saved, err := service.SaveModel(SaveModelDTO{
			UserID:   1,
			Name:     "Dragon",
			Filepath: "/m/dragon.gltf",
			Meshes:   []string{"head", "body"},
			Colors: []ColorInput{
				{Hexcode: "#ff0000", Material: "scale"},
				{Hexcode: "#ff0000", Material: "scale"},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, "head,body", saved.Mesh)

		var colorCount int64
		db.Model(&models.Color{}).Count(&colorCount)
		assert.EqualValues(t, 1, colorCount)

		var painted []models.PaintedModel
		db.Where("model_id = ?", saved.ID).Find(&painted)
		assert.Len(t, painted, 2)
		assert.Equal(t, painted[0].ColorID, painted[1].ColorID)
	})

	t.Run("Reuses existing color", func(t *testing.T) {
		service, db := newTestPainter(t)
		db.Create(&models.Color{Hexcode: "#00ff00", Material: "cloak"})

		_, err := service.SaveModel(SaveModelDTO{
			UserID:   1,
			Name:     "Knight",
			Filepath: "/m/knight.gltf",
			Colors:   []ColorInput{{Hexcode: "#00ff00", Material: "cloak"}},
		})
		assert.NoError(t, err)

		var colorCount int64
		db.Model(&models.Color{}).Count(&colorCount)
		assert.EqualValues(t, 1, colorCount)
	})

	t.Run("Empty palette", func(t *testing.T) {
		service, db := newTestPainter(t)

		saved, err := service.SaveModel(SaveModelDTO{
			UserID:   2,
			Name:     "Blank",
			Filepath: "/m/blank.gltf",
		})
		assert.NoError(t, err)
		assert.Equal(t, "", saved.Mesh)

		var paintedCount int64
		db.Model(&models.PaintedModel{}).Count(&paintedCount)
		assert.EqualValues(t, 0, paintedCount)
	})
}

func TestUpdateModel(t *testing.T) {
	seed := func(db *gorm.DB) (models.Model, models.Color) {
		model := models.Model{Name: "Dragon", Filepath: "/m/dragon.gltf", Mesh: "head,body"}
		db.Create(&model)
		color := models.Color{Hexcode: "#ff0000", Material: "scale"}
		db.Create(&color)
		db.Create(&models.PaintedModel{ModelID: model.ID, ColorID: color.ID})
		return model, color
	}

	t.Run("Model not found", func(t *testing.T) {
		service, _ := newTestPainter(t)
		err := service.UpdateModel(UpdatePaintDTO{ModelID: 999})
		assert.ErrorIs(t, err, ErrModelNotFound)
	})

	t.Run("Hexcode changed in place", func(t *testing.T) {
		service, db := newTestPainter(t)
		model, color := seed(db)

		err := service.UpdateModel(UpdatePaintDTO{
			ModelID: model.ID,
			Entries: []PaintEntry{{Material: "scale", Hexcode: "#00ff00"}},
		})
		assert.NoError(t, err)

		var updated models.Color
		db.First(&updated, color.ID)
		assert.Equal(t, "#00ff00", updated.Hexcode)

		var colorCount, paintedCount int64
		db.Model(&models.Color{}).Count(&colorCount)
		db.Model(&models.PaintedModel{}).Count(&paintedCount)
		assert.EqualValues(t, 1, colorCount)
		assert.EqualValues(t, 1, paintedCount)
	})

	t.Run("Shared color change is visible to other models", func(t *testing.T) {
		service, db := newTestPainter(t)
		model, color := seed(db)

		other := models.Model{Name: "Wyvern", Filepath: "/m/wyvern.gltf"}
		db.Create(&other)
		db.Create(&models.PaintedModel{ModelID: other.ID, ColorID: color.ID})

		err := service.UpdateModel(UpdatePaintDTO{
			ModelID: model.ID,
			Entries: []PaintEntry{{Material: "scale", Hexcode: "#123456"}},
		})
		assert.NoError(t, err)

		var otherPainted models.PaintedModel
		db.Preload("Color").Where("model_id = ?", other.ID).First(&otherPainted)
		assert.Equal(t, "#123456", otherPainted.Color.Hexcode)
	})

	t.Run("New material adds painted row", func(t *testing.T) {
		service, db := newTestPainter(t)
		model, _ := seed(db)

		err := service.UpdateModel(UpdatePaintDTO{
			ModelID: model.ID,
			Entries: []PaintEntry{{Material: "horn", Hexcode: "#ffffff"}},
		})
		assert.NoError(t, err)

		var colorCount, paintedCount int64
		db.Model(&models.Color{}).Count(&colorCount)
		db.Model(&models.PaintedModel{}).Where("model_id = ?", model.ID).Count(&paintedCount)
		assert.EqualValues(t, 2, colorCount)
		assert.EqualValues(t, 2, paintedCount)
	})

	t.Run("New material reuses color painted elsewhere", func(t *testing.T) {
		service, db := newTestPainter(t)
		model, _ := seed(db)
		db.Create(&models.Color{Hexcode: "#c0c0c0", Material: "metal"})

		err := service.UpdateModel(UpdatePaintDTO{
			ModelID: model.ID,
			Entries: []PaintEntry{{Material: "metal", Hexcode: "#c0c0c0"}},
		})
		assert.NoError(t, err)

		var colorCount int64
		db.Model(&models.Color{}).Count(&colorCount)
		assert.EqualValues(t, 2, colorCount)

		var painted []models.PaintedModel
		db.Where("model_id = ?", model.ID).Find(&painted)
		assert.Len(t, painted, 2)
	})

	t.Run("Unchanged hexcode writes nothing", func(t *testing.T) {
		service, db := newTestPainter(t)
		model, color := seed(db)

		err := service.UpdateModel(UpdatePaintDTO{
			ModelID: model.ID,
			Entries: []PaintEntry{{Material: "scale", Hexcode: "#ff0000"}},
		})
		assert.NoError(t, err)

		var unchanged models.Color
		db.First(&unchanged, color.ID)
		assert.Equal(t, "#ff0000", unchanged.Hexcode)
	})
}
