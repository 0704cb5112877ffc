package models

import "time"

// VaultItemType classifies the payload of a vault item.
type VaultItemType string

const (
	VaultItemCredential VaultItemType = "credential"
	VaultItemDocument   VaultItemType = "document"
	VaultItemNote       VaultItemType = "note"
	VaultItemMedia      VaultItemType = "media"
)

// VaultItem is an encrypted record stored within a tenant. CipherText is
// opaque to the server; clients encrypt before upload.
type VaultItem struct {
	ID         string
	TenantID   string
	Type       VaultItemType
	CipherText string
	Metadata   string
	CreatedAt  time.Time
	CreatedBy  string
}
