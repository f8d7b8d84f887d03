package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// resourceSpec describes one CRUD entity: its fixed required create fields,
// its patchable column set and its response quirks. The three entity tables
// below are the whole per-resource surface; the handlers themselves are
// shared.
type resourceSpec[T any] struct {
	notFoundMsg   string
	createFailMsg string
	updateFailMsg string
	createStatus  int
	preloads      []string

	// buildCreate returns false when a required field is absent.
	buildCreate func(body map[string]interface{}) (*T, bool)
	// applyPatch returns false for keys outside the entity's column
	// allow-list; relationship and internal fields are not patchable.
	applyPatch func(entity *T, key string, value interface{}) bool
}

var modelSpec = resourceSpec[models.Model]{
	notFoundMsg:   "Model not found",
	createFailMsg: "Failed to create model",
	updateFailMsg: "Failed to update model",
	createStatus:  http.StatusCreated,
	// Reads embed the painted rows (with their colors) and the owner one
	// level deep; the nil back-reference pointers keep the depth at one.
	preloads:    []string{"PaintedModels.Color", "User"},
	buildCreate: func(body map[string]interface{}) (*models.Model, bool) {
		name, ok1 := body["name"].(string)
		path, ok2 := body["filepath"].(string)
		mesh, ok3 := body["mesh"].(string)
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return &models.Model{Name: name, Filepath: path, Mesh: mesh}, true
	},
	applyPatch: func(m *models.Model, key string, value interface{}) bool {
		switch key {
		case "name":
			return setString(&m.Name, value)
		case "filepath":
			return setString(&m.Filepath, value)
		case "mesh":
			return setString(&m.Mesh, value)
		}
		return false
	},
}

var colorSpec = resourceSpec[models.Color]{
	notFoundMsg:   "Color not found",
	createFailMsg: "Failed to create color",
	updateFailMsg: "Failed to update color",
	createStatus:  http.StatusCreated,
	preloads:      []string{"PaintedModels"},
	buildCreate: func(body map[string]interface{}) (*models.Color, bool) {
		name, ok1 := body["name"].(string)
		hexcode, ok2 := body["hexcode"].(string)
		material, ok3 := body["material"].(string)
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return &models.Color{Name: name, Hexcode: hexcode, Material: material}, true
	},
	applyPatch: func(col *models.Color, key string, value interface{}) bool {
		switch key {
		case "name":
			return setString(&col.Name, value)
		case "hexcode":
			return setString(&col.Hexcode, value)
		case "material":
			return setString(&col.Material, value)
		}
		return false
	},
}

var paintedModelSpec = resourceSpec[models.PaintedModel]{
	notFoundMsg:   "Painted Model not found",
	createFailMsg: "Failed to create painted model",
	updateFailMsg: "Failed to update painted model",
	// Create deliberately answers 204 with no body; the frontend was built
	// against that, unlike the 201-plus-entity models and colors return.
	createStatus: http.StatusNoContent,
	preloads:     []string{"Model", "Color"},
	buildCreate: func(body map[string]interface{}) (*models.PaintedModel, bool) {
		modelID, ok1 := asUint(body["model_id"])
		colorID, ok2 := asUint(body["color_id"])
		if !ok1 || !ok2 {
			return nil, false
		}
		return &models.PaintedModel{ModelID: modelID, ColorID: colorID}, true
	},
	applyPatch: func(pm *models.PaintedModel, key string, value interface{}) bool {
		switch key {
		case "model_id":
			return setUint(&pm.ModelID, value)
		case "color_id":
			return setUint(&pm.ColorID, value)
		}
		return false
	},
}

func listResource[T any](h *Handler, spec resourceSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := make([]T, 0)
		q := h.db
		for _, preload := range spec.preloads {
			q = q.Preload(preload)
		}
		if err := q.Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func createResource[T any](h *Handler, spec resourceSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"Error": "Missing required fields"})
			return
		}

		entity, ok := spec.buildCreate(body)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"Error": "Missing required fields"})
			return
		}

		if err := h.db.Create(entity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": spec.createFailMsg})
			return
		}

		if spec.createStatus == http.StatusNoContent {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(spec.createStatus, entity)
	}
}

func getResource[T any](h *Handler, spec resourceSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, ok := findResource(h, spec, c, spec.preloads)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

func patchResource[T any](h *Handler, spec resourceSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fetched without preloads so Save touches only this row's columns.
		entity, ok := findResource(h, spec, c, nil)
		if !ok {
			return
		}

		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"Error": "Missing required fields"})
			return
		}

		for key, value := range body {
			if !spec.applyPatch(entity, key, value) {
				c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid field: " + key})
				return
			}
		}

		if err := h.db.Save(entity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": spec.updateFailMsg})
			return
		}

		c.JSON(http.StatusAccepted, entity)
	}
}

func deleteResource[T any](h *Handler, spec resourceSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, ok := findResource(h, spec, c, nil)
		if !ok {
			return
		}

		// No cascade: painted_models rows referencing a deleted model or
		// color stay behind, matching the observed contract.
		if err := h.db.Delete(entity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": "Database error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// findResource resolves the :id path parameter. A malformed id is reported
// the same way as a missing row. When false is returned the response has
// already been written.
func findResource[T any](h *Handler, spec resourceSpec[T], c *gin.Context, preloads []string) (*T, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"Error": spec.notFoundMsg})
		return nil, false
	}

	var entity T
	q := h.db
	for _, preload := range preloads {
		q = q.Preload(preload)
	}
	if err := q.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"Error": spec.notFoundMsg})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": "Database error"})
		}
		return nil, false
	}
	return &entity, true
}

func setString(dst *string, value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	*dst = s
	return true
}

func setUint(dst *uint, value interface{}) bool {
	id, ok := asUint(value)
	if !ok {
		return false
	}
	*dst = id
	return true
}

// asUint accepts the float64 encoding/json produces for JSON numbers.
func asUint(value interface{}) (uint, bool) {
	f, ok := value.(float64)
	if !ok || f < 0 || f != float64(uint(f)) {
		return 0, false
	}
	return uint(f), true
}
