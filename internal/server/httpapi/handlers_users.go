package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetCurrentUser(c *gin.Context) {
	user, err := s.users.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	userID := currentUserID(c)
	if err := s.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		s.logger.Error(c.Request.Context(), "account deletion failed", "user_id", userID, "error", err.Error())
		respondServiceError(c, err)
		return
	}
	s.logger.Info(c.Request.Context(), "account deleted", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (s *Server) handleExportUserData(c *gin.Context) {
	data, err := s.users.ExportUserData(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
