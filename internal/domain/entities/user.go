package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents platform roles
type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleVendor     UserRole = "VENDOR"
	UserRoleCustomer   UserRole = "CUSTOMER"
	UserRoleFinance    UserRole = "FINANCE"
	UserRoleOperations UserRole = "OPERATIONS"
)

// User represents a platform user account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful auth response
type AuthResponse struct {
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}
