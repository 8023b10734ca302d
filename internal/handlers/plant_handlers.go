package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/plantsy-golang/internal/models"
	"github.com/01moynul/plantsy-golang/internal/store"
	"github.com/gin-gonic/gin"
)

const (
	msgPlantNotFound    = "Plant not found"
	msgValidationFailed = "Validation failed"
	msgStockNotBoolean  = "is_in_stock must be boolean"
)

// GetAllPlants is the handler for GET /plants
func (h *Handlers) GetAllPlants(c *gin.Context) {
	plants, err := h.Plants.List(c.Request.Context())
	if err != nil {
		logError(c, "list_plants", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plants"})
		return
	}

	c.JSON(http.StatusOK, plants)
}

// CreatePlant is the handler for POST /plants
// Any failure, including a failed insert, is reported as the same generic
// validation error.
func (h *Handlers) CreatePlant(c *gin.Context) {
	// 1. --- Bind & Validate ---
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var input CreatePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logError(c, "create_plant", err)
		validationFailed(c, msgValidationFailed)
		return
	}

	// 2. --- Build Plant Model ---
	plant := &models.Plant{
		Name:      *input.Name,
		Image:     *input.Image,
		Price:     *input.Price,
		IsInStock: h.DefaultInStock,
	}

	// 3. --- Save to Database ---
	if err := h.Plants.Create(c.Request.Context(), plant); err != nil {
		logError(c, "create_plant", err)
		validationFailed(c, msgValidationFailed)
		return
	}

	c.JSON(http.StatusCreated, plant)
}

// GetPlant is the handler for GET /plants/:id
func (h *Handlers) GetPlant(c *gin.Context) {
	plant, err := h.lookupPlant(c)
	if err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			plantNotFound(c)
			return
		}
		logError(c, "get_plant", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plant"})
		return
	}

	c.JSON(http.StatusOK, plant)
}

// UpdatePlant is the handler for PATCH /plants/:id
// Only is_in_stock is ever changed. A body without it is a no-op that still
// answers 200 with the current record.
func (h *Handlers) UpdatePlant(c *gin.Context) {
	// 1. --- Check Existence ---
	// A failed lookup is reported as a validation error, never a 500.
	plant, err := h.lookupPlant(c)
	if err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			plantNotFound(c)
			return
		}
		logError(c, "update_plant", err)
		validationFailed(c, msgValidationFailed)
		return
	}

	// 2. --- Bind Body ---
	fields, err := bindPlantFields(c)
	if err != nil {
		logError(c, "update_plant", err)
		validationFailed(c, msgValidationFailed)
		return
	}

	inStock, present, err := stockUpdate(fields)
	if err != nil {
		validationFailed(c, msgStockNotBoolean)
		return
	}
	if !present {
		c.JSON(http.StatusOK, plant)
		return
	}

	// 3. --- Save to Database ---
	if err := h.Plants.UpdateStock(c.Request.Context(), plant.ID, inStock); err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			plantNotFound(c)
			return
		}
		logError(c, "update_plant", err)
		validationFailed(c, msgValidationFailed)
		return
	}
	plant.IsInStock = inStock

	c.JSON(http.StatusOK, plant)
}

// DeletePlant is the handler for DELETE /plants/:id
func (h *Handlers) DeletePlant(c *gin.Context) {
	plant, err := h.lookupPlant(c)
	if err == nil {
		err = h.Plants.Delete(c.Request.Context(), plant.ID)
	}
	if err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			plantNotFound(c)
			return
		}
		logError(c, "delete_plant", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plant"})
		return
	}

	c.Status(http.StatusNoContent)
}

// lookupPlant resolves the :id path parameter. An id that cannot name a plant
// is reported as store.ErrPlantNotFound.
func (h *Handlers) lookupPlant(c *gin.Context) (*models.Plant, error) {
	id, ok := parsePlantID(c.Param("id"))
	if !ok {
		return nil, store.ErrPlantNotFound
	}
	return h.Plants.GetByID(c.Request.Context(), id)
}

// parsePlantID accepts only unsigned base-10 integers; anything else
// ("+1", "-3", "abc") cannot name a plant.
func parsePlantID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func plantNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": msgPlantNotFound})
}

func validationFailed(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": []string{msg}})
}
