package domain

import "github.com/google/uuid"

// Role is the authorization role of an authenticated principal, supplied by
// the external auth collaborator.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleMember   Role = "member"
	RoleProducer Role = "producer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a raw role string to a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleViewer, RoleMember, RoleProducer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated identity performing an upload operation.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// Category is the semantic class of an upload, used by the access policy and
// encoded into the storage key prefix.
type Category string

const (
	CategoryAvatar      Category = "avatar"
	CategoryAttachment  Category = "attachment"
	CategoryDeliverable Category = "deliverable"
	CategoryRawFootage  Category = "raw_footage"

	// CategoryMisc is the fallback prefix for unrecognized categories.
	CategoryMisc Category = "misc"
)

// Visibility controls downstream read access to a stored asset.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
)
