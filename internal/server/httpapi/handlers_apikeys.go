package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateApiKeyRequest names the key being created.
type CreateApiKeyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleCreateApiKey(c *gin.Context) {
	var req CreateApiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}

	// the response is the only time the raw secret is revealed
	created, err := s.apiKeys.CreateApiKey(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListApiKeys(c *gin.Context) {
	keys, err := s.apiKeys.ListApiKeys(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

func (s *Server) handleDeleteApiKey(c *gin.Context) {
	err := s.apiKeys.DeleteApiKey(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "api key deleted"})
}
