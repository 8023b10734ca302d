package handlers

import (
	"database/sql"
	"log"

	"github.com/01moynul/plantsy-golang/internal/middleware"
	"github.com/01moynul/plantsy-golang/internal/store"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Plants store.PlantStore // Possibly cache-wrapped
	DB     *sql.DB          // Only used by the health check

	// DefaultInStock is the is_in_stock value given to new plants.
	DefaultInStock bool

	UploadDir string
	BaseURL   string

	ServiceName string
	Version     string
}

// logError writes an internal failure to the log without exposing it to the client.
func logError(c *gin.Context, operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v",
		middleware.GetRequestID(c.Request.Context()), operation, err)
}
