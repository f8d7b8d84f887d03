package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/services"

	"github.com/gin-gonic/gin"
)

// SaveModelRequest is the composite create payload. Every field is optional
// at the contract level; absent fields come through as zero values.
type SaveModelRequest struct {
	ModelName     string                `json:"model_name"`
	ModelFilepath string                `json:"model_filepath"`
	ModelMeshes   []string              `json:"model_meshes"`
	Colors        []services.ColorInput `json:"colors"`
}

type paintEntryPatch struct {
	Model struct {
		// Carries the material name despite the field label; the frontend
		// sends the painted region under model.name.
		Name string `json:"name"`
	} `json:"model"`
	Color struct {
		Hexcode string `json:"hexcode"`
	} `json:"color"`
}

type UpdateSaveModelRequest struct {
	PaintedModels []paintEntryPatch `json:"painted_models"`
}

// SaveModel handles POST /save-model: one new model plus its palette in a
// single workflow.
func (h *Handler) SaveModel(c *gin.Context) {
	// The auth gate already covers this route; the in-handler check stays as
	// defense in depth.
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"Error": "User not authenticated"})
		return
	}

	var req SaveModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Missing required fields"})
		return
	}

	_, err := h.painterService.SaveModel(services.SaveModelDTO{
		UserID:    userID,
		Name:      req.ModelName,
		Filepath:  req.ModelFilepath,
		Meshes:    req.ModelMeshes,
		Colors:    req.Colors,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: requestID(c),
	})
	if err != nil {
		h.logger.Error("save-model create failed", "error", err, "request_id", requestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to save model"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Model and Colors saved successfully"})
}

// UpdateSavedModel handles PATCH /save-model/:id: repainting an existing
// model by material name. Error bodies on this route keep the lowercase
// error/message shape the frontend expects.
func (h *Handler) UpdateSavedModel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
		return
	}

	var req UpdateSaveModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "An unexpected error occurred while updating the model",
		})
		return
	}

	entries := make([]services.PaintEntry, 0, len(req.PaintedModels))
	for _, pm := range req.PaintedModels {
		entries = append(entries, services.PaintEntry{
			Material: pm.Model.Name,
			Hexcode:  pm.Color.Hexcode,
		})
	}

	userID, _ := currentUserID(c)
	dto := services.UpdatePaintDTO{
		ModelID:   uint(id),
		Entries:   entries,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: requestID(c),
	}
	if userID != 0 {
		dto.UserID = &userID
	}

	if err := h.painterService.UpdateModel(dto); err != nil {
		if errors.Is(err, services.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
			return
		}
		h.logger.Error("save-model update failed", "error", err, "model_id", id, "request_id", requestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "Database error occurred while updating the model",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Model updated successfully"})
}
