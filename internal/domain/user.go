package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWalletTaken       = errors.New("wallet already registered")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidRole       = errors.New("invalid role")
)

type Role string

const (
	RoleGuest   Role = "guest"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole accepts only the roles a registered account can hold.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WalletAddress string    `gorm:"uniqueIndex;not null;size:64" json:"wallet_address"`
	Username      string    `gorm:"uniqueIndex;not null;size:30" json:"username"`
	FullName      string    `gorm:"size:30" json:"full_name"`
	Role          Role      `gorm:"not null;size:16;index" json:"role"`
	Signature     string    `gorm:"not null" json:"-"` // base58 proof of registration
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Student and Instructor are the per-role rows written next to the user row
// by the account procedures.
type Student struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	StdName   string
	CreatedAt time.Time
}

type Instructor struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	InsName   string
	CreatedAt time.Time
}

func (Instructor) TableName() string {
	return "instructors_list"
}
