package types

import (
	"time"
)

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password   string     `gorm:"not null;column:password" json:"-"`
	FirstName  string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string     `gorm:"not null;column:last_name" json:"last_name"`
	MiddleName *string    `gorm:"column:middle_name" json:"middle_name,omitempty"`
	Birthdate  *time.Time `gorm:"column:birthdate" json:"birthdate,omitempty"`
	Age        *int       `gorm:"column:age" json:"age,omitempty"`
	Role       string     `gorm:"not null;default:USER;column:role" json:"role"`
	IsActive   bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsChanged  bool       `gorm:"not null;default:false;column:is_changed" json:"is_changed"`
	LastLogin  *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the account's extended personal-information record, one-to-one
// with User. It mirrors a subset of the user columns; the service layer is
// responsible for keeping the two in sync.
type Profile struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	FirstName    string     `gorm:"column:first_name" json:"first_name"`
	LastName     string     `gorm:"column:last_name" json:"last_name"`
	MiddleName   *string    `gorm:"column:middle_name" json:"middle_name,omitempty"`
	Birthdate    *time.Time `gorm:"column:birthdate" json:"birthdate,omitempty"`
	Age          *int       `gorm:"column:age" json:"age,omitempty"`
	EmailAddress string     `gorm:"column:email_address" json:"email_address"`
	Role         string     `gorm:"column:role" json:"role"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
