package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus represents the lifecycle status of an account
type AccountStatus string

const (
	AccountStatusActive              AccountStatus = "ACTIVE"
	AccountStatusInactive            AccountStatus = "INACTIVE"
	AccountStatusPendingVerification AccountStatus = "PENDING_VERIFICATION"
	AccountStatusSuspended           AccountStatus = "SUSPENDED"
	AccountStatusLocked              AccountStatus = "LOCKED"
)

// User represents the centralized account table.
// Timestamps are set explicitly by the writing usecase, never by ORM hooks.
type User struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email         string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password      string        `gorm:"type:text;not null" json:"-"`
	FullName      string        `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber   string        `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	AccountStatus AccountStatus `gorm:"type:varchar(30);not null;index" json:"account_status"`
	IsActivated   bool          `gorm:"not null;default:false;index" json:"is_activated"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`

	// Relationships
	Roles         []Role         `gorm:"many2many:user_roles" json:"roles,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(roleName string) bool {
	for _, r := range u.Roles {
		if r.RoleName == roleName {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role names for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.RoleName
	}
	return names
}
