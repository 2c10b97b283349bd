package models

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Role  string `gorm:"not null;default:user" json:"role"`
	// OpenID Connect identifier. NULL for accounts not provisioned through
	// the login flow, so the unique index only binds actual OIDC subjects.
	OIDCID *string `gorm:"uniqueIndex" json:"-"`
}
