package member

import "time"

const (
	RoleAdmin      = "admin"
	RoleProfesseur = "professeur"
	RoleParent     = "parent"
	RoleApprenant  = "apprenant"
)

// rolePrefixes maps a role to the prefix of its NumeroH.
var rolePrefixes = map[string]string{
	RoleAdmin:      "ADMIN",
	RoleProfesseur: "PROF",
	RoleParent:     "PARENT",
	RoleApprenant:  "APPR",
}

// Member is identified by its NumeroH. The code is assigned once at
// registration and never reassigned or reused.
type Member struct {
	Code         string    `gorm:"primaryKey;size:32"`
	Role         string    `gorm:"type:varchar(16);not null;index"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func ValidRole(role string) bool {
	_, ok := rolePrefixes[role]
	return ok
}
