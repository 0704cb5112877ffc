package models

import "time"

// TenantType distinguishes a user's personal container from shared ones.
type TenantType string

const (
	TenantIndividual   TenantType = "individual"
	TenantOrganization TenantType = "organization"
)

// Tenant is a container for vault data. Every user owns exactly one
// individual tenant, created at registration.
type Tenant struct {
	ID        string
	Name      string
	Type      TenantType
	CreatedAt time.Time
	CreatedBy string
}
