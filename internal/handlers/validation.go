package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 2 << 20

var (
	errNotObject       = errors.New("body must be a JSON object")
	errStockNotBoolean = errors.New("is_in_stock must be boolean")
)

// CreatePlantInput is the body of POST /plants.
// Pointers make "required" reject a missing key or null while still
// accepting "" and 0.
type CreatePlantInput struct {
	Name  *string  `json:"name" binding:"required"`
	Image *string  `json:"image" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

// bindPlantFields binds a PATCH body as a loose JSON object.
func bindPlantFields(c *gin.Context) (map[string]interface{}, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotObject
	}
	return fields, nil
}

// stockUpdate returns the requested is_in_stock value and whether the key was
// present at all.
func stockUpdate(fields map[string]interface{}) (value bool, present bool, err error) {
	raw, ok := fields["is_in_stock"]
	if !ok {
		return false, false, nil
	}
	value, ok = raw.(bool)
	if !ok {
		return false, true, errStockNotBoolean
	}
	return value, true, nil
}
