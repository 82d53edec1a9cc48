package rest

import (
	"net/http"

	"lavka-be/internal/config"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Success: false, Message: message})
}

// respondInternal hides the underlying error outside development.
func respondInternal(c *gin.Context, cfg *config.Config, message string, err error) {
	resp := errorResponse{Success: false, Message: message}
	if cfg.IsDevelopment() && err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func respondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
}
