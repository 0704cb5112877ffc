package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// CreateTenantRequest names the organization tenant being created.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateVaultItemRequest is the payload for storing a vault item. The
// cipher text is opaque to the server.
type CreateVaultItemRequest struct {
	Type       string `json:"type" binding:"required"`
	CipherText string `json:"cipher_text" binding:"required"`
	Metadata   string `json:"metadata"`
}

func (s *Server) handleCreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}
	tenant, err := s.vault.CreateTenant(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

func (s *Server) handleListTenants(c *gin.Context) {
	tenants, err := s.vault.ListTenants(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

func (s *Server) handleCreateVaultItem(c *gin.Context) {
	var req CreateVaultItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}
	item, err := s.vault.CreateItem(c.Request.Context(), currentUserID(c), c.Param("tenantID"),
		models.VaultItemType(req.Type), req.CipherText, req.Metadata)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleListVaultItems(c *gin.Context) {
	items, err := s.vault.ListItems(c.Request.Context(), currentUserID(c), c.Param("tenantID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleGetVaultItem(c *gin.Context) {
	item, err := s.vault.GetItem(c.Request.Context(), currentUserID(c), c.Param("tenantID"), c.Param("itemID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteVaultItem(c *gin.Context) {
	err := s.vault.DeleteItem(c.Request.Context(), currentUserID(c), c.Param("tenantID"), c.Param("itemID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
