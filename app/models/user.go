package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

// User is the identity record. Accounts are created on first authentication
// (local registration or OAuth callback) and are never hard-deleted.
type User struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Email                string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	FirstName            string         `gorm:"type:varchar(100)" json:"first_name" validate:"max=100"`
	LastName             string         `gorm:"type:varchar(100)" json:"last_name" validate:"max=100"`
	Password             string         `gorm:"type:text" json:"-"`
	AvatarURL            string         `gorm:"type:varchar(255);default:null" json:"avatar_url" validate:"max=255"`
	Provider             string         `gorm:"type:varchar(50);default:''" json:"-"`
	ProviderAccountID    string         `gorm:"type:varchar(191);default:'';index" json:"-"`
	Status               string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	StripeCustomerID     string         `gorm:"type:varchar(191);default:'';index" json:"-"`
	StripeSubscriptionID string         `gorm:"type:varchar(191);default:''" json:"-"`
	LastLoginAt          *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a local-credentials user with a hashed password.
func CreateUser(email string, firstName string, lastName string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  pw,
		Status:    STATUS_ACTIVE,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

// IsOAuthOnly reports whether the account was created through an OAuth
// provider and carries no local password.
func (u *User) IsOAuthOnly() bool {
	return u.Provider != "" && u.Password == ""
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// FullName joins first and last name, tolerating either being empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
