package models

import "time"

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	Phone      string `gorm:"size:20" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	Province   string `gorm:"size:100" json:"province"`
	PostalCode string `gorm:"size:10" json:"postal_code"`
	AvatarURL  string `gorm:"size:255" json:"avatar_url"`

	Active      bool `gorm:"default:true" json:"active"`
	ActiveStaff bool `gorm:"default:true" json:"active_staff"`
	Verified    bool `gorm:"default:false" json:"verified"`

	// Staff-only contact fields
	Position  string `gorm:"size:100" json:"position"`
	WorkEmail string `gorm:"size:100" json:"work_email"`
	WorkPhone string `gorm:"size:20" json:"work_phone"`

	ResetToken        *string    `gorm:"size:64" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsStaffMember() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// CanLogin requires both flags for staff/admin accounts, only Active for customers.
func (u *User) CanLogin() bool {
	if u.IsStaffMember() {
		return u.Active && u.ActiveStaff
	}
	return u.Active
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
